package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/simonvc/huvudbok/internal/ledger"
)

// Column widths shared by the report views.
const (
	labelWidth  = 34
	amountWidth = 15
)

func centerStr(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return s
	}
	return strings.Repeat(" ", (w-n)/2) + s
}

func padRight(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

func padLeft(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return strings.Repeat(" ", n-c) + s
	}
	return s
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-2]) + ".."
}

// amt formats an amount right-aligned in an amount column. Negative
// figures are shown in red.
func amt(d decimal.Decimal) string {
	s := padLeft(ledger.FormatAmount(d), amountWidth)
	if d.IsNegative() && !ledger.IsZero(d) {
		return creditStyle.Render(s)
	}
	return s
}

// row renders a label followed by amount columns.
func row(indent int, label string, amounts ...decimal.Decimal) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", indent))
	b.WriteString(padRight(truncate(label, labelWidth+2-indent), labelWidth+2-indent))
	for _, a := range amounts {
		b.WriteString(" ")
		b.WriteString(amt(a))
	}
	b.WriteString("\n")
	return b.String()
}

// headings renders right-aligned column headings matching row.
func headings(cols ...string) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth+2))
	for _, c := range cols {
		b.WriteString(" ")
		b.WriteString(padLeft(c, amountWidth))
	}
	return dimStyle.Render(b.String()) + "\n"
}

func ruleStr(ch string, width int) string {
	return "  " + strings.Repeat(ch, width-4) + "\n"
}
