package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AggregatedAccount is one account's balances for a period. All amounts use
// the raw debit-minus-credit sign.
type AggregatedAccount struct {
	AccountNumber  string          `json:"account_number"`
	Description    string          `json:"description"`
	Classification Classification  `json:"classification"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	PeriodNet      decimal.Decimal `json:"period_net"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Postings       []Posting       `json:"postings"`
}

// Aggregation maps account number to its aggregated balances.
type Aggregation map[string]*AggregatedAccount

// Aggregate sums postings per account into opening balance, period net and
// closing balance. Signs are never flipped here; report builders convert to
// display signs. Only period postings are kept for drill-down.
func Aggregate(postings []Posting, classify Classifier) Aggregation {
	if classify == nil {
		classify = Classify
	}

	agg := make(Aggregation)
	for _, p := range postings {
		acct, ok := agg[p.AccountNumber]
		if !ok {
			acct = &AggregatedAccount{
				AccountNumber:  p.AccountNumber,
				Classification: classify(p.AccountNumber),
			}
			agg[p.AccountNumber] = acct
		}
		if acct.Description == "" {
			acct.Description = p.AccountDescription
		}

		if p.IsOpeningBalance {
			acct.OpeningBalance = acct.OpeningBalance.Add(p.Net())
			continue
		}
		acct.PeriodNet = acct.PeriodNet.Add(p.Net())
		acct.Postings = append(acct.Postings, p)
	}

	for _, acct := range agg {
		acct.ClosingBalance = acct.OpeningBalance.Add(acct.PeriodNet)
		if acct.Description == "" {
			if entry, ok := LookupChartEntry(acct.AccountNumber); ok {
				acct.Description = entry.Name
			}
		}
		sort.SliceStable(acct.Postings, func(i, j int) bool {
			return acct.Postings[i].TransactionDate < acct.Postings[j].TransactionDate
		})
	}
	return agg
}

// Sorted returns the accounts ordered by account number.
func (a Aggregation) Sorted() []*AggregatedAccount {
	out := make([]*AggregatedAccount, 0, len(a))
	for _, acct := range a {
		out = append(out, acct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return out
}

// Totals sums opening, period and closing balances of the accounts that
// satisfy keep.
func (a Aggregation) Totals(keep func(*AggregatedAccount) bool) (opening, period, closing decimal.Decimal) {
	for _, acct := range a {
		if !keep(acct) {
			continue
		}
		opening = opening.Add(acct.OpeningBalance)
		period = period.Add(acct.PeriodNet)
		closing = closing.Add(acct.ClosingBalance)
	}
	return opening, period, closing
}
