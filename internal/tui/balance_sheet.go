package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/huvudbok/internal/client"
	"github.com/simonvc/huvudbok/internal/ledger"
)

const reportWidth = 84

type balanceSheetLoadedMsg struct {
	year   int
	period string
	bs     *ledger.BalanceSheet
	err    error
}

type balanceSheetModel struct {
	year    int
	period  string
	bs      *ledger.BalanceSheet
	loading bool
	err     error
}

func (m *balanceSheetModel) init(c *client.Client, year int, period string) tea.Cmd {
	m.year, m.period = year, period
	m.loading = true
	return func() tea.Msg {
		bs, err := c.BalanceSheet(context.Background(), year, period)
		return balanceSheetLoadedMsg{year: year, period: period, bs: bs, err: err}
	}
}

func (m balanceSheetModel) update(msg tea.Msg) balanceSheetModel {
	switch msg := msg.(type) {
	case balanceSheetLoadedMsg:
		// a response for a year or period no longer on screen
		if msg.year != m.year || msg.period != m.period {
			return m
		}
		m.loading = false
		m.bs = msg.bs
		m.err = msg.err
	}
	return m
}

func (m *balanceSheetModel) view() string {
	if m.loading {
		return "Loading balance sheet..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.bs == nil {
		return dimStyle.Render("No data available.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerStr("BALANSRÄKNING", reportWidth)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerStr(fmt.Sprintf("%d, period %s, %s", m.bs.Year, m.bs.Period, ledger.ReportingCurrency), reportWidth)))
	b.WriteString("\n\n")
	b.WriteString(headings("INGÅENDE", "FÖRÄNDRING", "UTGÅENDE"))

	b.WriteString("  " + sectionStyle.Render("TILLGÅNGAR") + "\n")
	for _, sec := range m.bs.Assets {
		renderBalanceSection(&b, sec)
	}
	b.WriteString(ruleStr("═", reportWidth))
	b.WriteString(row(2, "Summa tillgångar", m.bs.TotalOpeningAssets, m.bs.TotalAssets.Sub(m.bs.TotalOpeningAssets), m.bs.TotalAssets))
	b.WriteString("\n")

	b.WriteString("  " + sectionStyle.Render("EGET KAPITAL OCH SKULDER") + "\n")
	for _, sec := range m.bs.LiabilitiesAndEquity {
		renderBalanceSection(&b, sec)
	}
	b.WriteString(ruleStr("═", reportWidth))
	b.WriteString(row(2, "Summa eget kapital och skulder",
		m.bs.TotalOpeningLiabilitiesAndEquity,
		m.bs.TotalLiabilitiesAndEquity.Sub(m.bs.TotalOpeningLiabilitiesAndEquity),
		m.bs.TotalLiabilitiesAndEquity))

	if len(m.bs.Other.Accounts) > 0 {
		b.WriteString("\n")
		renderBalanceSection(&b, m.bs.Other)
	}

	b.WriteString("\n")
	if m.bs.Balanced {
		b.WriteString(successStyle.Render("  [BALANSERAR]"))
	} else {
		b.WriteString(errorStyle.Render("  [BALANSERAR INTE! differens " + ledger.FormatAmount(m.bs.Difference) + "]"))
	}
	for _, u := range m.bs.UnbalancedTransactions {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("  obalanserad verifikation %s: debet %s, kredit %s",
			u.TransactionID, ledger.FormatAmount(u.Debit), ledger.FormatAmount(u.Credit))))
	}
	return b.String()
}

func renderBalanceSection(b *strings.Builder, sec ledger.BalanceSheetSection) {
	b.WriteString("    " + sec.Label + "\n")
	if len(sec.Accounts) == 0 {
		b.WriteString(dimStyle.Render("      (inga poster)") + "\n")
		return
	}
	for _, r := range sec.Accounts {
		label := r.AccountNumber + " " + r.Description
		if r.Synthetic {
			label = "     " + r.Description
		}
		b.WriteString(row(6, label, r.Opening, r.Change, r.Closing))
	}
	b.WriteString(row(4, "Summa "+strings.ToLower(sec.Label), sec.OpeningTotal, sec.ChangeTotal, sec.Total))
}
