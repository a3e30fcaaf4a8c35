package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simonvc/huvudbok/internal/ledger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "huvudbok.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func purchase(date string) *ledger.Transaction {
	return &ledger.Transaction{
		Description: "Kontorsmaterial",
		Date:        date,
		Postings: []ledger.Posting{
			{AccountNumber: "1930", Credit: amount("1000")},
			{AccountNumber: "6110", Debit: amount("800")},
			{AccountNumber: "2640", Debit: amount("200")},
		},
	}
}

func TestCreateAndGetTransaction(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	txn := purchase("2024-02-15T09:30:00Z")
	if err := s.CreateTransaction(ctx, txn); err != nil {
		t.Fatal(err)
	}
	if txn.ID == "" {
		t.Fatal("no id assigned")
	}
	if txn.Date != "2024-02-15" {
		t.Errorf("date not normalised: %s", txn.Date)
	}

	got, err := s.GetTransaction(ctx, txn.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Description != txn.Description || got.Date != "2024-02-15" || len(got.Postings) != 3 {
		t.Fatalf("got %+v", got)
	}
	p := got.Postings[0]
	if p.AccountNumber != "1930" || !p.Credit.Equal(amount("1000")) || !p.Debit.IsZero() {
		t.Errorf("first posting = %+v", p)
	}
	if p.AccountDescription == "" {
		t.Error("account description not filled from chart")
	}
	if p.TransactionID != txn.ID || p.TransactionDate != "2024-02-15" {
		t.Errorf("posting header not joined: %+v", p)
	}
}

func TestCreateTransactionRejectsInvalid(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	txn := purchase("2024-02-15")
	txn.Postings[1].Debit = amount("799.99")
	if err := s.CreateTransaction(ctx, txn); !errors.Is(err, ledger.ErrUnbalancedTransaction) {
		t.Fatalf("err = %v, want ErrUnbalancedTransaction", err)
	}

	txns, err := s.ListTransactions(ctx, TxnFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(txns) != 0 {
		t.Errorf("invalid transaction stored: %+v", txns)
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetTransaction(context.Background(), "nope"); !errors.Is(err, ledger.ErrTransactionNotFound) {
		t.Errorf("err = %v, want ErrTransactionNotFound", err)
	}
}

func TestListTransactionsFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, d := range []string{"2023-11-01", "2024-01-10", "2024-03-05"} {
		if err := s.CreateTransaction(ctx, purchase(d)); err != nil {
			t.Fatal(err)
		}
	}
	fee := &ledger.Transaction{
		Description: "Bankavgift",
		Date:        "2024-03-31",
		Postings: []ledger.Posting{
			{AccountNumber: "6570", Debit: amount("35")},
			{AccountNumber: "1930", Credit: amount("35")},
		},
	}
	if err := s.CreateTransaction(ctx, fee); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		filter TxnFilter
		want   []string
	}{
		{"all", TxnFilter{}, []string{"2024-03-31", "2024-03-05", "2024-01-10", "2023-11-01"}},
		{"year", TxnFilter{Year: 2024}, []string{"2024-03-31", "2024-03-05", "2024-01-10"}},
		{"account", TxnFilter{Account: "6570"}, []string{"2024-03-31"}},
		{"limit offset", TxnFilter{Year: 2024, Limit: 1, Offset: 1}, []string{"2024-03-05"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns, err := s.ListTransactions(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(txns) != len(tt.want) {
				t.Fatalf("got %d transactions, want %d", len(txns), len(tt.want))
			}
			for i, txn := range txns {
				if txn.Date != tt.want[i] {
					t.Errorf("txn %d date = %s, want %s", i, txn.Date, tt.want[i])
				}
				if len(txn.Postings) < 2 {
					t.Errorf("txn %d has %d postings", i, len(txn.Postings))
				}
			}
		})
	}
}

func TestListPostingsByYear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ib := &ledger.Transaction{
		Description:      "Ingående balans",
		Date:             "2024-01-01",
		IsOpeningBalance: true,
		Postings: []ledger.Posting{
			{AccountNumber: "1930", Debit: amount("5000")},
			{AccountNumber: "2081", Credit: amount("5000")},
		},
	}
	for _, txn := range []*ledger.Transaction{ib, purchase("2024-02-01"), purchase("2023-06-01"), purchase("2022-06-01")} {
		if err := s.CreateTransaction(ctx, txn); err != nil {
			t.Fatal(err)
		}
	}

	postings, err := s.ListPostings(ctx, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(postings) != 5 {
		t.Fatalf("2024 postings = %d, want 5", len(postings))
	}
	if !postings[0].IsOpeningBalance || postings[0].TransactionDescription != "Ingående balans" {
		t.Errorf("first posting = %+v", postings[0])
	}

	both, err := s.ListPostings(ctx, 2024, 2023)
	if err != nil {
		t.Fatal(err)
	}
	if len(both) != 8 {
		t.Errorf("2023+2024 postings = %d, want 8", len(both))
	}

	all, err := s.ListPostings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 11 {
		t.Errorf("all postings = %d, want 11", len(all))
	}

	years, err := s.Years(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(years) != 3 || years[0] != 2024 || years[2] != 2022 {
		t.Errorf("years = %v", years)
	}

	bs := ledger.BuildBalanceSheet(ledger.Aggregate(postings, ledger.Classify), ledger.Classify)
	if !bs.Balanced {
		t.Errorf("stored ledger does not balance: %s", bs.Difference)
	}
}

func TestFinalizedPostingsAreImmutable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	txn := purchase("2024-02-15")
	if err := s.CreateTransaction(ctx, txn); err != nil {
		t.Fatal(err)
	}

	if _, err := s.writer.ExecContext(ctx,
		`INSERT INTO postings (transaction_id, account_number, debit, credit) VALUES (?, '1930', '1', '0')`, txn.ID); err == nil {
		t.Error("insert into finalized transaction succeeded")
	}
	if _, err := s.writer.ExecContext(ctx,
		`UPDATE postings SET debit = '900' WHERE transaction_id = ?`, txn.ID); err == nil {
		t.Error("update of finalized posting succeeded")
	}
	if _, err := s.writer.ExecContext(ctx,
		`DELETE FROM postings WHERE transaction_id = ?`, txn.ID); err == nil {
		t.Error("delete of finalized posting succeeded")
	}
}

func TestFinalizeTriggerRejectsUnbalanced(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	stmts := []string{
		`INSERT INTO transactions (id, description, date) VALUES ('raw', 'raw', '2024-01-01')`,
		`INSERT INTO postings (transaction_id, account_number, debit, credit) VALUES ('raw', '1930', '100', '0')`,
		`INSERT INTO postings (transaction_id, account_number, debit, credit) VALUES ('raw', '3001', '0', '90')`,
	}
	for _, stmt := range stmts {
		if _, err := s.writer.ExecContext(ctx, stmt); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.writer.ExecContext(ctx, `UPDATE transactions SET finalized = 1 WHERE id = 'raw'`); err == nil {
		t.Error("unbalanced transaction finalized")
	}
	if _, err := s.writer.ExecContext(ctx,
		`INSERT INTO postings (transaction_id, account_number, debit, credit) VALUES ('raw', '19x0', '0', '10')`); err == nil {
		t.Error("malformed account number accepted")
	}
}
