package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/simonvc/huvudbok/internal/client"
	"github.com/simonvc/huvudbok/internal/ledger"
	"github.com/spf13/cobra"
)

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Show the income statement (resultaträkning)",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		is, err := c.IncomeStatement(context.Background(), flagYear)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), is)
		}
		printIncomeStatement(cmd.OutOrStdout(), is)
		return nil
	},
}

const incomeWidth = 84

func printIncomeStatement(w io.Writer, is *ledger.IncomeStatement) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, center("RESULTATRÄKNING", incomeWidth))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %15s %15s %15s\n", padRight("", 34),
		strconv.Itoa(is.Year), strconv.Itoa(is.PreviousYear), "FÖRÄNDRING")

	printIncomeSection(w, is.Revenue)
	for _, sec := range is.OperatingCosts {
		if len(sec.Accounts) > 0 {
			printIncomeSection(w, sec)
		}
	}
	printResultLine(w, "Summa rörelsekostnader", is.OperatingCostTotal)
	rule(w, "─", incomeWidth)
	printResultLine(w, "Rörelseresultat", is.OperatingResult)
	fmt.Fprintln(w)

	printIncomeSection(w, is.FinancialIncome)
	printIncomeSection(w, is.FinancialCost)
	rule(w, "─", incomeWidth)
	printResultLine(w, "Resultat efter finansiella poster", is.ResultAfterFinancial)
	rule(w, "═", incomeWidth)
	printResultLine(w, "Årets resultat", is.NetResult)

	if len(is.Other.Accounts) > 0 {
		fmt.Fprintln(w)
		printIncomeSection(w, is.Other)
	}
}

func printIncomeSection(w io.Writer, sec ledger.IncomeStatementSection) {
	fmt.Fprintf(w, "    %s\n", sec.Label)
	for _, row := range sec.Accounts {
		label := truncate(row.AccountNumber+" "+row.Description, 30)
		fmt.Fprintf(w, "      %s %15s %15s %15s\n", padRight(label, 30),
			amount(row.Amounts.Current), amount(row.Amounts.Previous), amount(row.Amounts.Change))
	}
	printResultLine(w, "  Summa "+strings.ToLower(sec.Label), sec.Total)
}

func printResultLine(w io.Writer, label string, c ledger.Comparison) {
	fmt.Fprintf(w, "  %s %15s %15s %15s\n", padRight(label, 34),
		amount(c.Current), amount(c.Previous), amount(c.Change))
}

func init() {
	addReportFlags(incomeCmd, false)
	rootCmd.AddCommand(incomeCmd)
}
