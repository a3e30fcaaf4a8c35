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

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the balance sheet (balansräkning)",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		bs, err := c.BalanceSheet(context.Background(), flagYear, flagPeriod)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), bs)
		}
		printBalanceSheet(cmd.OutOrStdout(), bs)
		return nil
	},
}

const balanceWidth = 84

func printBalanceSheet(w io.Writer, bs *ledger.BalanceSheet) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, center("BALANSRÄKNING", balanceWidth))
	fmt.Fprintln(w, center(fmt.Sprintf("%d, period %s", bs.Year, bs.Period), balanceWidth))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %15s %15s %15s\n", padRight("", 34), "INGÅENDE", "FÖRÄNDRING", "UTGÅENDE")

	fmt.Fprintln(w, "  TILLGÅNGAR")
	for _, sec := range bs.Assets {
		printBalanceSection(w, sec)
	}
	rule(w, "═", balanceWidth)
	fmt.Fprintf(w, "  %s %15s %15s %15s\n", padRight("Summa tillgångar", 34),
		amount(bs.TotalOpeningAssets), "", amount(bs.TotalAssets))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  EGET KAPITAL OCH SKULDER")
	for _, sec := range bs.LiabilitiesAndEquity {
		printBalanceSection(w, sec)
	}
	rule(w, "═", balanceWidth)
	fmt.Fprintf(w, "  %s %15s %15s %15s\n", padRight("Summa eget kapital och skulder", 34),
		amount(bs.TotalOpeningLiabilitiesAndEquity), "", amount(bs.TotalLiabilitiesAndEquity))

	if len(bs.Other.Accounts) > 0 {
		fmt.Fprintln(w)
		printBalanceSection(w, bs.Other)
	}

	if bs.Balanced {
		fmt.Fprintln(w, "\n  [BALANSERAR]")
	} else {
		fmt.Fprintf(w, "\n  [BALANSERAR INTE! differens %s]\n", amount(bs.Difference))
	}
	for _, u := range bs.UnbalancedTransactions {
		fmt.Fprintf(w, "  obalanserad verifikation %s: debet %s, kredit %s\n",
			u.TransactionID, amount(u.Debit), amount(u.Credit))
	}
}

func printBalanceSection(w io.Writer, sec ledger.BalanceSheetSection) {
	fmt.Fprintf(w, "    %s\n", sec.Label)
	for _, row := range sec.Accounts {
		label := row.AccountNumber + " " + row.Description
		if row.Synthetic {
			label = strings.Repeat(" ", 5) + row.Description
		}
		fmt.Fprintf(w, "      %s %15s %15s %15s\n", padRight(truncate(label, 30), 30),
			amount(row.Opening), amount(row.Change), amount(row.Closing))
	}
	fmt.Fprintf(w, "    %s %15s %15s %15s\n", padRight("Summa "+strings.ToLower(sec.Label), 32),
		amount(sec.OpeningTotal), amount(sec.ChangeTotal), amount(sec.Total))
}

func init() {
	addReportFlags(balanceCmd, true)
	rootCmd.AddCommand(balanceCmd)
}
