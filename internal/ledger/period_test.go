package ledger

import (
	"errors"
	"testing"
)

func TestPeriodRange(t *testing.T) {
	tests := []struct {
		year   int
		period string
		start  string
		end    string
	}{
		{2024, "all", "2024-01-01", "2024-12-31"},
		{2024, "Q1", "2024-01-01", "2024-03-31"},
		{2024, "Q2", "2024-04-01", "2024-06-30"},
		{2024, "Q4", "2024-10-01", "2024-12-31"},
		{2024, "02", "2024-02-01", "2024-02-29"},
		{2023, "02", "2023-02-01", "2023-02-28"},
		{2024, "04", "2024-04-01", "2024-04-30"},
		{2024, "12", "2024-12-01", "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			start, end, err := PeriodRange(tt.year, tt.period)
			if err != nil {
				t.Fatal(err)
			}
			if got := start.Format(DateLayout); got != tt.start {
				t.Errorf("start = %s, want %s", got, tt.start)
			}
			if got := end.Format(DateLayout); got != tt.end {
				t.Errorf("end = %s, want %s", got, tt.end)
			}
		})
	}
}

func TestPeriodRangeRejectsBadInput(t *testing.T) {
	tests := []struct {
		year   int
		period string
		want   error
	}{
		{2024, "Q5", ErrInvalidPeriod},
		{2024, "13", ErrInvalidPeriod},
		{2024, "00", ErrInvalidPeriod},
		{2024, "1", ErrInvalidPeriod},
		{2024, "ALL", ErrInvalidPeriod},
		{2024, "", ErrInvalidPeriod},
		{0, "all", ErrInvalidYear},
		{10000, "all", ErrInvalidYear},
	}

	for _, tt := range tests {
		if err := ValidatePeriod(tt.year, tt.period); !errors.Is(err, tt.want) {
			t.Errorf("ValidatePeriod(%d, %q) = %v, want %v", tt.year, tt.period, err, tt.want)
		}
	}
	for _, p := range Periods {
		if err := ValidatePeriod(2024, p); err != nil {
			t.Errorf("ValidatePeriod(2024, %q) = %v", p, err)
		}
	}
}

func TestFilterByPeriod(t *testing.T) {
	postings := []Posting{
		opening("1930", "2024-01-01", 5000, 0),
		posting("a", "1930", "2024-01-31", 100, 0),
		posting("b", "1930", "2024-02-29", 200, 0),
		posting("c", "1930", "2024-03-31T22:00:00Z", 300, 0),
		posting("d", "1930", "2024-04-01", 400, 0),
		posting("e", "1930", "2023-12-31", 500, 0),
		posting("f", "1930", "not a date", 600, 0),
		opening("1930", "2023-01-01", 9000, 0),
	}

	tests := []struct {
		period string
		ids    []string
	}{
		{"all", []string{"ib", "a", "b", "c", "d"}},
		{"Q1", []string{"ib", "a", "b", "c"}},
		{"02", []string{"ib", "b"}},
		{"03", []string{"ib", "c"}},
		{"12", []string{"ib"}},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			got, err := FilterByPeriod(postings, 2024, tt.period)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.ids) {
				t.Fatalf("got %d postings, want %d: %+v", len(got), len(tt.ids), got)
			}
			for i, p := range got {
				if p.TransactionID != tt.ids[i] {
					t.Errorf("posting %d = %s, want %s", i, p.TransactionID, tt.ids[i])
				}
			}
			if got[0].Debit.IntPart() != 5000 {
				t.Errorf("opening posting from wrong year kept: %+v", got[0])
			}
		})
	}
}

func TestFilterByPeriodInvalidPeriod(t *testing.T) {
	if _, err := FilterByPeriod(scenarioPostings(), 2024, "Q0"); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("err = %v, want ErrInvalidPeriod", err)
	}
}

func TestOpeningBalanceInvariantUnderMonthFilter(t *testing.T) {
	postings := []Posting{
		opening("1930", "2024-01-01", 5000, 0),
		opening("2081", "2024-01-01", 0, 5000),
		posting("1", "1930", "2024-01-10", 0, 1000),
		posting("1", "6072", "2024-01-10", 1000, 0),
		posting("2", "1930", "2024-06-20", 300, 0),
		posting("2", "3001", "2024-06-20", 0, 300),
	}

	var want Aggregation
	for _, period := range []string{"01", "06", "12"} {
		filtered, err := FilterByPeriod(postings, 2024, period)
		if err != nil {
			t.Fatal(err)
		}
		agg := Aggregate(filtered, Classify)
		if want == nil {
			want = agg
			continue
		}
		for _, acct := range []string{"1930", "2081"} {
			if !agg[acct].OpeningBalance.Equal(want[acct].OpeningBalance) {
				t.Errorf("period %s: opening %s = %s, want %s", period, acct, agg[acct].OpeningBalance, want[acct].OpeningBalance)
			}
		}
	}
	assertAmount(t, "1930 opening", want["1930"].OpeningBalance, "5000")
}
