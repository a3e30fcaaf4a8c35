package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/simonvc/huvudbok/internal/client"
	"github.com/simonvc/huvudbok/internal/ledger"
	"github.com/spf13/cobra"
)

var vatCmd = &cobra.Command{
	Use:   "vat",
	Short: "Show the VAT return (momsdeklaration)",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		r, err := c.VatReport(context.Background(), flagYear, flagPeriod)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), r)
		}
		printVatReport(cmd.OutOrStdout(), r)
		return nil
	},
}

const vatWidth = 84

func printVatReport(w io.Writer, r *ledger.VatReport) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, center("MOMSDEKLARATION", vatWidth))
	fmt.Fprintln(w, center(fmt.Sprintf("%d, period %s", r.Year, r.Period), vatWidth))
	fmt.Fprintln(w)

	if len(r.Boxes) == 0 {
		fmt.Fprintln(w, "  Inga momspliktiga poster för perioden.")
	}
	for _, b := range r.Boxes {
		fmt.Fprintf(w, "  %s  %s %15s  %s\n", b.Code, padRight(truncate(b.Description, 50), 50),
			amount(b.Amount), strings.Join(b.Accounts, ","))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Ruta 49 beräknad: %15s\n", amount(r.Box49Computed))
	fmt.Fprintf(w, "  Ruta 49 bokförd:  %15s\n", amount(r.Box49Direct))
	if r.Correct {
		fmt.Fprintln(w, "\n  [STÄMMER]")
	} else {
		fmt.Fprintf(w, "\n  [STÄMMER INTE! differens %s]\n", amount(r.Difference))
	}
}

func init() {
	addReportFlags(vatCmd, true)
	rootCmd.AddCommand(vatCmd)
}
