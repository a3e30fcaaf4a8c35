package ledger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// PeriodAll selects the whole fiscal year.
const PeriodAll = "all"

// Periods lists every accepted period code in calendar order.
var Periods = []string{
	PeriodAll,
	"Q1", "Q2", "Q3", "Q4",
	"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12",
}

// PeriodRange returns the first and last day (inclusive) of a period in a
// calendar fiscal year.
func PeriodRange(year int, period string) (time.Time, time.Time, error) {
	if year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}

	var first, last time.Month
	switch period {
	case PeriodAll:
		first, last = time.January, time.December
	case "Q1", "Q2", "Q3", "Q4":
		q := int(period[1] - '0')
		first = time.Month(3*(q-1) + 1)
		last = first + 2
	default:
		m, ok := monthCode(period)
		if !ok {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: %q (want all, Q1-Q4 or 01-12)", ErrInvalidPeriod, period)
		}
		first, last = m, m
	}

	start := time.Date(year, first, 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the following month is the last day of the month.
	end := time.Date(year, last+1, 0, 0, 0, 0, 0, time.UTC)
	return start, end, nil
}

func monthCode(s string) (time.Month, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '1' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	m := int(s[0]-'0')*10 + int(s[1]-'0')
	if m < 1 || m > 12 {
		return 0, false
	}
	return time.Month(m), true
}

// ValidatePeriod checks a (year, period) pair without filtering anything.
func ValidatePeriod(year int, period string) error {
	_, _, err := PeriodRange(year, period)
	return err
}

// FilterByPeriod returns the postings dated within the period. Opening
// balance postings are kept for every period of their year, since they
// carry the balance brought forward into the year as a whole. Postings
// with an unparseable date are dropped with a warning.
func FilterByPeriod(postings []Posting, year int, period string) ([]Posting, error) {
	start, end, err := PeriodRange(year, period)
	if err != nil {
		return nil, err
	}

	out := make([]Posting, 0, len(postings))
	for _, p := range postings {
		d, err := ParseDate(p.TransactionDate)
		if err != nil {
			zap.L().Warn("skipping posting with malformed date",
				zap.String("transaction_id", p.TransactionID),
				zap.String("account", p.AccountNumber),
				zap.String("date", p.TransactionDate),
			)
			continue
		}
		if p.IsOpeningBalance {
			if d.Year() == year {
				out = append(out, p)
			}
			continue
		}
		if !d.Before(start) && !d.After(end) {
			out = append(out, p)
		}
	}
	return out, nil
}
