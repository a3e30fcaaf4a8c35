package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/huvudbok/internal/client"
	"github.com/simonvc/huvudbok/internal/ledger"
)

type txnDetailLoadedMsg struct {
	txn *ledger.Transaction
	err error
}

type txnDetailModel struct {
	txn     *ledger.Transaction
	loading bool
	err     error
}

func (m *txnDetailModel) init(c *client.Client, id string) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		txn, err := c.GetTransaction(context.Background(), id)
		return txnDetailLoadedMsg{txn: txn, err: err}
	}
}

func (m txnDetailModel) update(msg tea.Msg) txnDetailModel {
	switch msg := msg.(type) {
	case txnDetailLoadedMsg:
		m.loading = false
		m.txn = msg.txn
		m.err = msg.err
	}
	return m
}

func (m *txnDetailModel) view() string {
	if m.loading {
		return "Loading verification..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.txn == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Verifikation %s", m.txn.ID)))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Text:"), m.txn.Description))
	b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Datum:"), m.txn.Date))
	if m.txn.IsOpeningBalance {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Typ:"), "Ingående balans"))
	}
	if !m.txn.CreatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Registrerad:"), m.txn.CreatedAt.Format("2006-01-02 15:04:05")))
	}
	b.WriteString("\n")

	header := fmt.Sprintf("  %-4s %-7s %s %15s %15s", "", "KONTO", padRight("BENÄMNING", 36), "DEBET", "KREDIT")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, p := range m.txn.Postings {
		debit, credit := "", ""
		direction := "DR"
		if !p.Debit.IsZero() {
			debit = ledger.FormatAmount(p.Debit)
		}
		if !p.Credit.IsZero() {
			credit = ledger.FormatAmount(p.Credit)
			direction = "CR"
		}

		line := fmt.Sprintf("  %-4s %-7s %s %15s %15s", direction, p.AccountNumber,
			padRight(truncate(p.AccountDescription, 36), 36), debit, credit)
		if direction == "DR" {
			b.WriteString(debitStyle.Render(line))
		} else {
			b.WriteString(creditStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + dimStyle.Render("  Press ESC to go back"))
	return b.String()
}
