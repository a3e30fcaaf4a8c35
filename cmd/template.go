package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/simonvc/huvudbok/internal/client"
	"github.com/simonvc/huvudbok/internal/ledger"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tpl"},
	Short:   "Posting templates (förval)",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posting templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(flagServer)

		tpls, err := c.ListTemplates(context.Background())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-18s %-7s %-22s %s\n", "KEY", "DEFAULT", "ACCOUNT", "NAME")
		fmt.Fprintf(w, "%-18s %-7s %-22s %s\n", "---", "-------", "-------", "----")
		for _, t := range tpls {
			fmt.Fprintf(w, "%-18s %-7s %-22s %s\n", t.Key, t.DefaultAccount, truncate(t.AccountRole, 22), t.Name)
		}
		return nil
	},
}

var (
	tplAmount      string
	tplAccount     string
	tplDate        string
	tplDescription string
	tplDryRun      bool
)

var templateApplyCmd = &cobra.Command{
	Use:   "apply [key]",
	Short: "Create a verification from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := ledger.ParseTemplateKind(args[0])
		if err != nil {
			return err
		}
		amt, err := ledger.ParseAmount(tplAmount)
		if err != nil {
			return err
		}

		c := client.New(flagServer)
		txn, err := c.ApplyTemplate(context.Background(), kind.String(), ledger.TemplateParams{
			Amount:      amt,
			Account:     tplAccount,
			Date:        tplDate,
			Description: tplDescription,
		}, tplDryRun)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if tplDryRun {
			fmt.Fprintln(w, "Dry run, nothing stored.")
		} else {
			fmt.Fprintf(w, "Verification created: %s\n", txn.ID)
		}
		printTransaction(w, txn)
		return nil
	},
}

func init() {
	templateApplyCmd.Flags().StringVar(&tplAmount, "amount", "", "Gross amount (e.g. 1 250,00)")
	templateApplyCmd.Flags().StringVar(&tplAccount, "account", "", "Override the template's variable account")
	templateApplyCmd.Flags().StringVar(&tplDate, "date", time.Now().Format(ledger.DateLayout), "Verification date (YYYY-MM-DD)")
	templateApplyCmd.Flags().StringVar(&tplDescription, "description", "", "Verification description")
	templateApplyCmd.Flags().BoolVar(&tplDryRun, "dry-run", false, "Show the postings without storing them")
	templateApplyCmd.MarkFlagRequired("amount")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateApplyCmd)

	rootCmd.AddCommand(templateCmd)
}
