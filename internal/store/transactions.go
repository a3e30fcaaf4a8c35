package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simonvc/huvudbok/internal/ledger"
)

// CreateTransaction validates and stores a verification. The date is
// normalised to YYYY-MM-DD and postings inherit the verification header.
func (s *Store) CreateTransaction(ctx context.Context, txn *ledger.Transaction) error {
	if err := txn.Validate(); err != nil {
		return err
	}
	if txn.ID == "" {
		txn.ID = uuid.Must(uuid.NewV7()).String()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}
	date, _ := ledger.ParseDate(txn.Date)
	txn.Date = date.Format(ledger.DateLayout)

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Insert transaction (finalized=0)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, description, date, is_opening_balance, created_at) VALUES (?, ?, ?, ?, ?)`,
		txn.ID, txn.Description, txn.Date, boolToInt(txn.IsOpeningBalance), txn.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	for i := range txn.Postings {
		p := &txn.Postings[i]
		if p.AccountDescription == "" {
			if entry, ok := ledger.LookupChartEntry(p.AccountNumber); ok {
				p.AccountDescription = entry.Name
			}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO postings (transaction_id, account_number, account_description, debit, credit) VALUES (?, ?, ?, ?, ?)`,
			txn.ID, p.AccountNumber, p.AccountDescription, p.Debit.String(), p.Credit.String(),
		)
		if err != nil {
			return fmt.Errorf("insert posting %d: %w", i, err)
		}
	}

	// Finalize - trigger fires to validate balance
	_, err = tx.ExecContext(ctx,
		`UPDATE transactions SET finalized = 1 WHERE id = ?`, txn.ID)
	if err != nil {
		return fmt.Errorf("finalize transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	txn.Postings = txn.Flatten()
	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*ledger.Transaction, error) {
	var txn ledger.Transaction
	var createdAt string
	var opening int

	err := s.reader.QueryRowContext(ctx,
		`SELECT id, description, date, is_opening_balance, created_at FROM transactions WHERE id = ? AND finalized = 1`, id,
	).Scan(&txn.ID, &txn.Description, &txn.Date, &opening, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	txn.IsOpeningBalance = opening == 1
	txn.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	postings, err := s.getPostingsForTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	txn.Postings = postings

	return &txn, nil
}

// ListTransactions returns finalized verifications, newest date first.
func (s *Store) ListTransactions(ctx context.Context, filter TxnFilter) ([]ledger.Transaction, error) {
	query := `SELECT DISTINCT t.id, t.description, t.date, t.is_opening_balance, t.created_at FROM transactions t`
	args := []any{}

	if filter.Account != "" {
		query += ` JOIN postings p ON p.transaction_id = t.id WHERE p.account_number = ?`
		args = append(args, filter.Account)
	} else {
		query += ` WHERE 1=1`
	}
	if filter.Year > 0 {
		query += ` AND substr(t.date, 1, 4) = ?`
		args = append(args, yearKey(filter.Year))
	}

	query += ` AND t.finalized = 1 ORDER BY t.date DESC, t.created_at DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET %d`, filter.Offset)
		}
	}

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []ledger.Transaction
	for rows.Next() {
		var txn ledger.Transaction
		var createdAt string
		var opening int
		if err := rows.Scan(&txn.ID, &txn.Description, &txn.Date, &opening, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txn.IsOpeningBalance = opening == 1
		txn.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range txns {
		postings, err := s.getPostingsForTransaction(ctx, txns[i].ID)
		if err != nil {
			return nil, err
		}
		txns[i].Postings = postings
	}
	return txns, nil
}

func (s *Store) getPostingsForTransaction(ctx context.Context, txnID string) ([]ledger.Posting, error) {
	rows, err := s.reader.QueryContext(ctx, postingQuery+` WHERE p.transaction_id = ? ORDER BY p.id`, txnID)
	if err != nil {
		return nil, fmt.Errorf("get postings: %w", err)
	}
	defer rows.Close()

	return scanPostings(rows)
}

func yearKey(year int) string {
	return fmt.Sprintf("%04d", year)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

