package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/simonvc/huvudbok/internal/client"
	"github.com/simonvc/huvudbok/internal/ledger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// verificationFile is the YAML layout accepted by the import command.
// Amounts are strings so both "1234.50" and "1 234,50" are accepted.
type verificationFile struct {
	Verifications []struct {
		Description string `yaml:"description"`
		Date        string `yaml:"date"`
		Opening     bool   `yaml:"opening"`
		Postings    []struct {
			Account     string `yaml:"account"`
			Description string `yaml:"description"`
			Debit       string `yaml:"debit"`
			Credit      string `yaml:"credit"`
		} `yaml:"postings"`
	} `yaml:"verifications"`
}

// parseVerifications reads and validates every verification in a YAML
// document.
func parseVerifications(r io.Reader) ([]*ledger.Transaction, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file verificationFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	txns := make([]*ledger.Transaction, 0, len(file.Verifications))
	for i, v := range file.Verifications {
		txn := &ledger.Transaction{
			Description:      v.Description,
			Date:             v.Date,
			IsOpeningBalance: v.Opening,
		}
		for j, p := range v.Postings {
			posting := ledger.Posting{
				AccountNumber:      p.Account,
				AccountDescription: p.Description,
			}
			var err error
			if p.Debit != "" {
				if posting.Debit, err = ledger.ParseAmount(p.Debit); err != nil {
					return nil, fmt.Errorf("verification %d posting %d: %w", i+1, j+1, err)
				}
			}
			if p.Credit != "" {
				if posting.Credit, err = ledger.ParseAmount(p.Credit); err != nil {
					return nil, fmt.Errorf("verification %d posting %d: %w", i+1, j+1, err)
				}
			}
			txn.Postings = append(txn.Postings, posting)
		}
		if err := txn.Validate(); err != nil {
			return nil, fmt.Errorf("verification %d (%s): %w", i+1, v.Description, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import [file.yaml]",
	Short: "Import verifications from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}
		defer f.Close()

		txns, err := parseVerifications(f)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if importDryRun {
			fmt.Fprintf(w, "%d verifications valid, nothing stored.\n", len(txns))
			return nil
		}

		c := client.New(flagServer)
		for i, txn := range txns {
			created, err := c.CreateTransaction(context.Background(), txn)
			if err != nil {
				return fmt.Errorf("verification %d (%s): %w", i+1, txn.Description, err)
			}
			log.Debug("imported verification", zap.String("id", created.ID), zap.String("date", created.Date))
			fmt.Fprintf(w, "%s  %s  %s\n", created.ID, created.Date, created.Description)
		}
		fmt.Fprintf(w, "Imported %d verifications.\n", len(txns))
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate the file without storing anything")
	rootCmd.AddCommand(importCmd)
}
