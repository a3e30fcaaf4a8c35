package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func posting(txn, account, date string, debit, credit int64) Posting {
	return Posting{
		TransactionID:   txn,
		AccountNumber:   account,
		TransactionDate: date,
		Debit:           decimal.NewFromInt(debit),
		Credit:          decimal.NewFromInt(credit),
	}
}

func opening(account, date string, debit, credit int64) Posting {
	p := posting("ib", account, date, debit, credit)
	p.IsOpeningBalance = true
	return p
}

func assertAmount(t *testing.T, what string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", what, got.String(), want)
	}
}

// scenarioPostings is a Q1 purchase of 800 + 200 input VAT paid from the
// bank account.
func scenarioPostings() []Posting {
	return []Posting{
		posting("1", "1930", "2024-02-15", 0, 1000),
		posting("1", "6072", "2024-02-15", 800, 0),
		posting("1", "2640", "2024-02-15", 200, 0),
	}
}
