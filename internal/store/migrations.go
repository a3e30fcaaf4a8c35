package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		// Verifications
		`CREATE TABLE IF NOT EXISTS transactions (
			id                 TEXT PRIMARY KEY,
			description        TEXT NOT NULL,
			date               TEXT NOT NULL,
			is_opening_balance INTEGER NOT NULL DEFAULT 0,
			finalized          INTEGER NOT NULL DEFAULT 0,
			created_at         TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,

		// Postings. Amounts are decimal strings so no öre is lost to floats.
		`CREATE TABLE IF NOT EXISTS postings (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			transaction_id      TEXT NOT NULL REFERENCES transactions(id),
			account_number      TEXT NOT NULL CHECK (length(account_number) = 4 AND account_number NOT GLOB '*[^0-9]*'),
			account_description TEXT NOT NULL DEFAULT '',
			debit               TEXT NOT NULL DEFAULT '0',
			credit              TEXT NOT NULL DEFAULT '0'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_postings_txn ON postings(transaction_id)`,
		`CREATE INDEX IF NOT EXISTS idx_postings_account ON postings(account_number)`,

		// Trigger: refuse to finalize a verification whose postings do not balance.
		// Go validates exactly before insert; this catches rows written by other tools.
		`CREATE TRIGGER IF NOT EXISTS trg_check_balance
		BEFORE UPDATE OF finalized ON transactions
		WHEN NEW.finalized = 1
		BEGIN
			SELECT CASE
				WHEN (SELECT COUNT(*) FROM postings WHERE transaction_id = NEW.id) < 2
				THEN RAISE(ABORT, 'transaction needs at least 2 postings')
				WHEN (
					SELECT ABS(SUM(CAST(debit AS REAL)) - SUM(CAST(credit AS REAL)))
					FROM postings
					WHERE transaction_id = NEW.id
				) >= 0.005
				THEN RAISE(ABORT, 'transaction postings do not balance: debit != credit')
			END;
		END`,

		`CREATE TRIGGER IF NOT EXISTS trg_immutable_postings_insert
		BEFORE INSERT ON postings
		WHEN (SELECT finalized FROM transactions WHERE id = NEW.transaction_id) = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot add postings to a finalized transaction');
		END`,

		`CREATE TRIGGER IF NOT EXISTS trg_immutable_postings_delete
		BEFORE DELETE ON postings
		WHEN (SELECT finalized FROM transactions WHERE id = OLD.transaction_id) = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot remove postings from a finalized transaction');
		END`,

		`CREATE TRIGGER IF NOT EXISTS trg_immutable_postings_update
		BEFORE UPDATE ON postings
		WHEN (SELECT finalized FROM transactions WHERE id = OLD.transaction_id) = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot modify postings of a finalized transaction');
		END`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}
