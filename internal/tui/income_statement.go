package tui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/huvudbok/internal/client"
	"github.com/simonvc/huvudbok/internal/ledger"
)

type incomeStatementLoadedMsg struct {
	year int
	is   *ledger.IncomeStatement
	err  error
}

// incomeStatementModel always covers the whole fiscal year and compares it
// to the year before.
type incomeStatementModel struct {
	year    int
	is      *ledger.IncomeStatement
	loading bool
	err     error
}

func (m *incomeStatementModel) init(c *client.Client, year int) tea.Cmd {
	m.year = year
	m.loading = true
	return func() tea.Msg {
		is, err := c.IncomeStatement(context.Background(), year)
		return incomeStatementLoadedMsg{year: year, is: is, err: err}
	}
}

func (m incomeStatementModel) update(msg tea.Msg) incomeStatementModel {
	switch msg := msg.(type) {
	case incomeStatementLoadedMsg:
		if msg.year != m.year {
			return m
		}
		m.loading = false
		m.is = msg.is
		m.err = msg.err
	}
	return m
}

func (m *incomeStatementModel) view() string {
	if m.loading {
		return "Loading income statement..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.is == nil {
		return dimStyle.Render("No data available.")
	}

	is := m.is
	var b strings.Builder
	b.WriteString(titleStyle.Render(centerStr("RESULTATRÄKNING", reportWidth)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerStr("helår, "+ledger.ReportingCurrency, reportWidth)))
	b.WriteString("\n\n")
	b.WriteString(headings(strconv.Itoa(is.Year), strconv.Itoa(is.PreviousYear), "FÖRÄNDRING"))

	renderIncomeSection(&b, is.Revenue)
	for _, sec := range is.OperatingCosts {
		if len(sec.Accounts) > 0 {
			renderIncomeSection(&b, sec)
		}
	}
	b.WriteString(comparisonRow(2, "Summa rörelsekostnader", is.OperatingCostTotal))
	b.WriteString(ruleStr("─", reportWidth))
	b.WriteString(comparisonRow(2, "Rörelseresultat", is.OperatingResult))
	b.WriteString("\n")

	renderIncomeSection(&b, is.FinancialIncome)
	renderIncomeSection(&b, is.FinancialCost)
	b.WriteString(ruleStr("─", reportWidth))
	b.WriteString(comparisonRow(2, "Resultat efter finansiella poster", is.ResultAfterFinancial))
	b.WriteString(ruleStr("═", reportWidth))
	b.WriteString(sectionStyle.Render(strings.TrimSuffix(comparisonRow(2, "Årets resultat", is.NetResult), "\n")))
	b.WriteString("\n")

	if len(is.Other.Accounts) > 0 {
		b.WriteString("\n")
		renderIncomeSection(&b, is.Other)
	}
	return b.String()
}

func renderIncomeSection(b *strings.Builder, sec ledger.IncomeStatementSection) {
	b.WriteString("    " + sec.Label + "\n")
	for _, r := range sec.Accounts {
		b.WriteString(comparisonRow(6, r.AccountNumber+" "+r.Description, r.Amounts))
	}
	b.WriteString(comparisonRow(4, "Summa "+strings.ToLower(sec.Label), sec.Total))
}

func comparisonRow(indent int, label string, c ledger.Comparison) string {
	return row(indent, label, c.Current, c.Previous, c.Change)
}
