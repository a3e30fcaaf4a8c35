package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/simonvc/huvudbok/internal/client"
	"github.com/simonvc/huvudbok/internal/ledger"
)

type txnsLoadedMsg struct {
	year int
	txns []ledger.Transaction
	err  error
}

type txnListModel struct {
	year    int
	txns    []ledger.Transaction
	cursor  int
	loading bool
	err     error
	height  int
}

func (m *txnListModel) init(c *client.Client, year int) tea.Cmd {
	m.year = year
	m.loading = true
	return func() tea.Msg {
		txns, err := c.ListTransactions(context.Background(), year, "", 0)
		return txnsLoadedMsg{year: year, txns: txns, err: err}
	}
}

func (m txnListModel) update(msg tea.Msg) (txnListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case txnsLoadedMsg:
		if msg.year != m.year {
			return m, nil
		}
		m.loading = false
		m.txns = msg.txns
		m.err = msg.err
		if m.cursor >= len(m.txns) {
			m.cursor = max(len(m.txns)-1, 0)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.txns)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *txnListModel) selectedID() string {
	if m.cursor >= 0 && m.cursor < len(m.txns) {
		return m.txns[m.cursor].ID
	}
	return ""
}

func (m *txnListModel) view() string {
	if m.loading {
		return "Loading verifications..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.txns) == 0 {
		return dimStyle.Render(fmt.Sprintf("No verifications in %d.", m.year))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Verifikationer %d", m.year)))
	b.WriteString("\n")

	header := fmt.Sprintf("  %-10s %-3s %15s  %s", "DATUM", "IB", "BELOPP", "TEXT")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	maxRows := m.height - 4
	if maxRows < 1 {
		maxRows = 10
	}

	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	for i := start; i < len(m.txns) && i < start+maxRows; i++ {
		t := m.txns[i]
		ib := ""
		if t.IsOpeningBalance {
			ib = "*"
		}
		var total decimal.Decimal
		for _, p := range t.Postings {
			total = total.Add(p.Debit)
		}

		line := fmt.Sprintf("  %-10s %-3s %15s  %s", t.Date, ib, ledger.FormatAmount(total), truncate(t.Description, 40))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n  %d verifications", len(m.txns)))
	return b.String()
}
