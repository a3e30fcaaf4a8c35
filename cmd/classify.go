package cmd

import (
	"fmt"
	"io"

	"github.com/simonvc/huvudbok/internal/ledger"
	"github.com/spf13/cobra"
)

var classifyChart bool

var classifyCmd = &cobra.Command{
	Use:   "classify [account...]",
	Short: "Show how BAS accounts are classified",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if classifyChart {
			printChart(w, ledger.AllChartEntries())
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("give at least one account number, or --chart")
		}

		for _, number := range args {
			if !ledger.ValidAccountNumber(number) {
				return fmt.Errorf("%w: %q", ledger.ErrInvalidAccountNumber, number)
			}
		}

		fmt.Fprintf(w, "%-7s %-18s %-24s %-4s %s\n", "ACCOUNT", "CLASS", "SECTION", "VAT", "LABEL")
		for _, number := range args {
			cl := ledger.Classify(number)
			box := "-"
			if def, ok := ledger.VatBoxFor(number); ok {
				box = def.Code
			}
			label := cl.Label
			if entry, ok := ledger.LookupChartEntry(number); ok {
				label = entry.Name
			}
			fmt.Fprintf(w, "%-7s %-18s %-24s %-4s %s\n", number, cl.Class, cl.Section, box, label)
		}
		return nil
	},
}

func printChart(w io.Writer, entries []ledger.ChartEntry) {
	fmt.Fprintf(w, "%-7s %s %s\n", "ACCOUNT", padRight("NAME", 44), "SECTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%-7s %s %s\n", e.Number, padRight(truncate(e.Name, 44), 44), e.Classification.Label)
	}
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyChart, "chart", false, "Print the built-in chart of accounts")
	rootCmd.AddCommand(classifyCmd)
}
