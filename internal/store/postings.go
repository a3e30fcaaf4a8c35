package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/simonvc/huvudbok/internal/ledger"
)

const postingQuery = `SELECT p.transaction_id, p.account_number, p.account_description,
		t.description, t.date, p.debit, p.credit, t.is_opening_balance
	FROM postings p
	JOIN transactions t ON t.id = p.transaction_id`

// ListPostings returns every finalized posting dated in one of the given
// years, joined with its verification header. With no years it returns
// the whole ledger.
func (s *Store) ListPostings(ctx context.Context, years ...int) ([]ledger.Posting, error) {
	query := postingQuery + ` WHERE t.finalized = 1`
	args := make([]any, 0, len(years))
	if len(years) > 0 {
		marks := make([]string, len(years))
		for i, y := range years {
			marks[i] = "?"
			args = append(args, yearKey(y))
		}
		query += ` AND substr(t.date, 1, 4) IN (` + strings.Join(marks, ",") + `)`
	}
	query += ` ORDER BY t.date, p.id`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	defer rows.Close()

	return scanPostings(rows)
}

// Years lists the fiscal years that have postings, newest first.
func (s *Store) Years(ctx context.Context) ([]int, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT DISTINCT CAST(substr(date, 1, 4) AS INTEGER) AS y FROM transactions WHERE finalized = 1 ORDER BY y DESC`)
	if err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func scanPostings(rows *sql.Rows) ([]ledger.Posting, error) {
	var postings []ledger.Posting
	for rows.Next() {
		var p ledger.Posting
		var opening int
		if err := rows.Scan(&p.TransactionID, &p.AccountNumber, &p.AccountDescription,
			&p.TransactionDescription, &p.TransactionDate, &p.Debit, &p.Credit, &opening); err != nil {
			return nil, fmt.Errorf("scan posting: %w", err)
		}
		p.IsOpeningBalance = opening == 1
		postings = append(postings, p)
	}
	return postings, rows.Err()
}
