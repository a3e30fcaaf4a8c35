package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/huvudbok/internal/client"
	"github.com/simonvc/huvudbok/internal/ledger"
)

type vatReportLoadedMsg struct {
	year   int
	period string
	report *ledger.VatReport
	err    error
}

type vatReportModel struct {
	year    int
	period  string
	report  *ledger.VatReport
	loading bool
	err     error
}

func (m *vatReportModel) init(c *client.Client, year int, period string) tea.Cmd {
	m.year, m.period = year, period
	m.loading = true
	return func() tea.Msg {
		r, err := c.VatReport(context.Background(), year, period)
		return vatReportLoadedMsg{year: year, period: period, report: r, err: err}
	}
}

func (m vatReportModel) update(msg tea.Msg) vatReportModel {
	switch msg := msg.(type) {
	case vatReportLoadedMsg:
		if msg.year != m.year || msg.period != m.period {
			return m
		}
		m.loading = false
		m.report = msg.report
		m.err = msg.err
	}
	return m
}

func (m *vatReportModel) view() string {
	if m.loading {
		return "Loading VAT report..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.report == nil {
		return dimStyle.Render("No data available.")
	}

	r := m.report
	var b strings.Builder
	b.WriteString(titleStyle.Render(centerStr("MOMSDEKLARATION", reportWidth)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerStr(fmt.Sprintf("%d, period %s, %s", r.Year, r.Period, ledger.ReportingCurrency), reportWidth)))
	b.WriteString("\n\n")

	if len(r.Boxes) == 0 {
		b.WriteString(dimStyle.Render("  Inga momspliktiga poster för perioden.") + "\n")
	}
	for _, box := range r.Boxes {
		label := fmt.Sprintf("%-3s %s", box.Code, box.Description)
		b.WriteString(strings.TrimSuffix(row(2, label, box.Amount), "\n"))
		b.WriteString("  " + dimStyle.Render(strings.Join(box.Accounts, ",")) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(row(2, "Ruta 49 beräknad", r.Box49Computed))
	b.WriteString(row(2, "Ruta 49 bokförd", r.Box49Direct))
	b.WriteString("\n")
	if r.Correct {
		b.WriteString(successStyle.Render("  [STÄMMER]"))
	} else {
		b.WriteString(errorStyle.Render("  [STÄMMER INTE! differens " + ledger.FormatAmount(r.Difference) + "]"))
	}
	return b.String()
}
