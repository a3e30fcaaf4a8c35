package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for transaction dates.
const DateLayout = "2006-01-02"

// Posting is one debit or credit line of a verification.
type Posting struct {
	TransactionID          string          `json:"transaction_id"`
	AccountNumber          string          `json:"account_number"`
	AccountDescription     string          `json:"account_description"`
	TransactionDescription string          `json:"transaction_description"`
	TransactionDate        string          `json:"transaction_date"`
	Debit                  decimal.Decimal `json:"debit"`
	Credit                 decimal.Decimal `json:"credit"`
	IsOpeningBalance       bool            `json:"is_opening_balance"`
}

// Net returns debit minus credit.
func (p Posting) Net() decimal.Decimal {
	return p.Debit.Sub(p.Credit)
}

// Transaction is a verification: a dated, described set of postings that
// must balance.
type Transaction struct {
	ID               string    `json:"id"`
	Description      string    `json:"description"`
	Date             string    `json:"date"`
	IsOpeningBalance bool      `json:"is_opening_balance"`
	Postings         []Posting `json:"postings"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
}

// Validate checks that the verification has a description, a parseable date,
// at least 2 postings on 4-digit accounts with non-negative amounts, and
// debit equal to credit.
func (t *Transaction) Validate() error {
	if t.Description == "" {
		return ErrEmptyDescription
	}
	if _, err := ParseDate(t.Date); err != nil {
		return err
	}
	if len(t.Postings) < 2 {
		return ErrTooFewPostings
	}

	var debit, credit decimal.Decimal
	for _, p := range t.Postings {
		if !ValidAccountNumber(p.AccountNumber) {
			return fmt.Errorf("%w: %q", ErrInvalidAccountNumber, p.AccountNumber)
		}
		if p.Debit.IsNegative() || p.Credit.IsNegative() {
			return fmt.Errorf("%w: account %s has a negative amount", ErrInvalidAmount, p.AccountNumber)
		}
		debit = debit.Add(p.Debit)
		credit = credit.Add(p.Credit)
	}
	if !debit.Equal(credit) {
		return fmt.Errorf("%w: debit %s, credit %s", ErrUnbalancedTransaction, debit.StringFixed(2), credit.StringFixed(2))
	}
	return nil
}

// Flatten copies the verification header onto each posting.
func (t *Transaction) Flatten() []Posting {
	out := make([]Posting, len(t.Postings))
	for i, p := range t.Postings {
		p.TransactionID = t.ID
		p.TransactionDescription = t.Description
		p.TransactionDate = t.Date
		p.IsOpeningBalance = t.IsOpeningBalance
		out[i] = p
	}
	return out
}

// ParseDate accepts a calendar date ("2024-03-31") or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// TransactionImbalance describes a transaction whose postings do not sum to
// zero.
type TransactionImbalance struct {
	TransactionID string          `json:"transaction_id"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Difference    decimal.Decimal `json:"difference"`
}

// UnbalancedTransactions groups postings by transaction and returns every
// transaction whose debit and credit differ, ordered by transaction id.
func UnbalancedTransactions(postings []Posting) []TransactionImbalance {
	type sums struct{ debit, credit decimal.Decimal }
	byTxn := make(map[string]*sums)
	for _, p := range postings {
		s, ok := byTxn[p.TransactionID]
		if !ok {
			s = &sums{}
			byTxn[p.TransactionID] = s
		}
		s.debit = s.debit.Add(p.Debit)
		s.credit = s.credit.Add(p.Credit)
	}

	var out []TransactionImbalance
	for id, s := range byTxn {
		if s.debit.Equal(s.credit) {
			continue
		}
		out = append(out, TransactionImbalance{
			TransactionID: id,
			Debit:         s.debit,
			Credit:        s.credit,
			Difference:    s.debit.Sub(s.credit),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionID < out[j].TransactionID })
	return out
}
