package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simonvc/huvudbok/internal/client"
	"github.com/simonvc/huvudbok/internal/ledger"
	"github.com/spf13/cobra"
)

var transactionCmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"txn"},
	Short:   "Manage verifications",
}

// transaction create
var (
	txnDescription string
	txnDate        string
	txnOpening     bool
	txnPostings    []string // format: "account:amount", debit positive
)

var transactionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new verification",
	Long: "Create a verification from double-entry postings.\n" +
		"Each --entry is \"account:amount\"; a positive amount is a debit and a\n" +
		"negative amount a credit (e.g. \"1930:-1 000,00\" \"6110:800\" \"2640:200\").",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		txn := &ledger.Transaction{
			Description:      txnDescription,
			Date:             txnDate,
			IsOpeningBalance: txnOpening,
		}
		for _, entry := range txnPostings {
			p, err := parsePostingFlag(entry)
			if err != nil {
				return err
			}
			txn.Postings = append(txn.Postings, p)
		}

		created, err := c.CreateTransaction(context.Background(), txn)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Verification created: %s\n", created.ID)
		printTransaction(cmd.OutOrStdout(), created)
		return nil
	},
}

// parsePostingFlag parses "account:amount" where a negative amount is a
// credit.
func parsePostingFlag(entry string) (ledger.Posting, error) {
	account, amt, ok := strings.Cut(entry, ":")
	if !ok {
		return ledger.Posting{}, fmt.Errorf("invalid posting %q, expected account:amount", entry)
	}
	d, err := ledger.ParseAmount(amt)
	if err != nil {
		return ledger.Posting{}, fmt.Errorf("posting %q: %w", entry, err)
	}
	p := ledger.Posting{AccountNumber: strings.TrimSpace(account)}
	if d.IsNegative() {
		p.Credit = d.Neg()
	} else {
		p.Debit = d
	}
	return p, nil
}

// transaction list
var (
	txnListYear    int
	txnListAccount string
	txnListLimit   int
)

var transactionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List verifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		txns, err := c.ListTransactions(context.Background(), txnListYear, txnListAccount, txnListLimit)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(txns) == 0 {
			fmt.Fprintln(w, "No verifications found.")
			return nil
		}

		fmt.Fprintf(w, "%-38s %-10s %-3s %15s %s\n", "ID", "DATE", "IB", "AMOUNT", "DESCRIPTION")
		fmt.Fprintf(w, "%-38s %-10s %-3s %15s %s\n", "----", "----", "--", "------", "-----------")
		for _, t := range txns {
			ib := ""
			if t.IsOpeningBalance {
				ib = "*"
			}
			var total decimal.Decimal
			for _, p := range t.Postings {
				total = total.Add(p.Debit)
			}
			fmt.Fprintf(w, "%-38s %-10s %-3s %15s %s\n", t.ID, t.Date, ib, amount(total), truncate(t.Description, 40))
		}
		return nil
	},
}

// transaction get
var transactionGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get verification details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		txn, err := c.GetTransaction(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "ID:          %s\n", txn.ID)
		printTransaction(cmd.OutOrStdout(), txn)
		return nil
	},
}

func printTransaction(w io.Writer, txn *ledger.Transaction) {
	fmt.Fprintf(w, "Description: %s\n", txn.Description)
	fmt.Fprintf(w, "Date:        %s\n", txn.Date)
	if txn.IsOpeningBalance {
		fmt.Fprintln(w, "Opening balance (ingående balans)")
	}
	fmt.Fprintf(w, "  %-7s %s %15s %15s\n", "ACCOUNT", padRight("NAME", 36), "DEBIT", "CREDIT")
	for _, p := range txn.Postings {
		debit, credit := "", ""
		if !p.Debit.IsZero() {
			debit = amount(p.Debit)
		}
		if !p.Credit.IsZero() {
			credit = amount(p.Credit)
		}
		fmt.Fprintf(w, "  %-7s %s %15s %15s\n", p.AccountNumber, padRight(truncate(p.AccountDescription, 36), 36), debit, credit)
	}
}

func init() {
	transactionCreateCmd.Flags().StringVar(&txnDescription, "description", "", "Verification description")
	transactionCreateCmd.Flags().StringVar(&txnDate, "date", time.Now().Format(ledger.DateLayout), "Verification date (YYYY-MM-DD)")
	transactionCreateCmd.Flags().BoolVar(&txnOpening, "opening", false, "Opening balance verification")
	transactionCreateCmd.Flags().StringArrayVar(&txnPostings, "entry", nil, "Entry in format account:amount, negative for credit (can be repeated)")
	transactionCreateCmd.MarkFlagRequired("description")
	transactionCreateCmd.MarkFlagRequired("entry")

	transactionListCmd.Flags().IntVar(&txnListYear, "year", 0, "Filter by fiscal year")
	transactionListCmd.Flags().StringVar(&txnListAccount, "account", "", "Filter by account number")
	transactionListCmd.Flags().IntVar(&txnListLimit, "limit", 0, "Maximum number of verifications")

	transactionCmd.AddCommand(transactionCreateCmd)
	transactionCmd.AddCommand(transactionListCmd)
	transactionCmd.AddCommand(transactionGetCmd)

	rootCmd.AddCommand(transactionCmd)
}
