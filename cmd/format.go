package cmd

import (
	"encoding/json"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/simonvc/huvudbok/internal/ledger"
	"github.com/spf13/cobra"
)

var (
	flagYear   int
	flagPeriod string
	flagJSON   bool
)

// addReportFlags registers --year, --json and, when withPeriod is set,
// --period on a report command.
func addReportFlags(cmd *cobra.Command, withPeriod bool) {
	cmd.Flags().IntVar(&flagYear, "year", time.Now().Year(), "Fiscal year")
	if withPeriod {
		cmd.Flags().StringVar(&flagPeriod, "period", ledger.PeriodAll, "Period: all, Q1-Q4 or 01-12")
	}
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Print the report as JSON")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func center(s string, w int) string {
	n := utf8.RuneCountInString(s)
	if n >= w {
		return s
	}
	pad := (w - n) / 2
	return strings.Repeat(" ", pad) + s
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-2]) + ".."
}

// padRight pads s with spaces to n runes; fmt's %-*s counts bytes, which
// misaligns å, ä and ö.
func padRight(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

func amount(d decimal.Decimal) string {
	return ledger.FormatAmount(d)
}

func rule(w io.Writer, ch string, width int) {
	io.WriteString(w, "  "+strings.Repeat(ch, width-4)+"\n")
}
