package ledger

import (
	"errors"
	"testing"
)

func TestVatBoxFor(t *testing.T) {
	tests := []struct {
		account string
		box     string
	}{
		{"3001", "05"}, {"3053", "05"}, {"3402", "06"}, {"3200", "07"}, {"3913", "08"},
		{"2610", "10"}, {"2611", "10"}, {"2621", "11"}, {"2631", "12"},
		{"4515", "20"}, {"4535", "21"}, {"4531", "22"}, {"4415", "23"}, {"4425", "24"},
		{"2614", "30"}, {"2624", "31"}, {"2634", "32"},
		{"3106", "35"}, {"3108", "35"}, {"3105", "36"}, {"4512", "37"}, {"3107", "38"},
		{"3308", "39"}, {"3305", "40"}, {"3231", "41"}, {"3004", "42"}, {"3054", "42"},
		{"2640", "48"}, {"2645", "48"}, {"4545", "50"},
		{"2615", "60"}, {"2625", "61"}, {"2635", "62"},
	}
	for _, tt := range tests {
		t.Run(tt.account, func(t *testing.T) {
			b, ok := VatBoxFor(tt.account)
			if !ok || b.Code != tt.box {
				t.Errorf("VatBoxFor(%s) = %q, %v; want %q", tt.account, b.Code, ok, tt.box)
			}
		})
	}

	for _, acct := range []string{"1930", "2650", "6072", "3010", "abcd"} {
		if b, ok := VatBoxFor(acct); ok {
			t.Errorf("VatBoxFor(%s) = %s, want none", acct, b.Code)
		}
	}
}

func TestVatBoxesAreDisjointAndOrdered(t *testing.T) {
	seen := make(map[int]string)
	for i, b := range vatBoxes {
		if i > 0 && vatBoxes[i-1].Code >= b.Code {
			t.Errorf("box %s out of order", b.Code)
		}
		for _, r := range b.Ranges {
			for n := r.From; n <= r.To; n++ {
				if prev, ok := seen[n]; ok {
					t.Errorf("account %d in boxes %s and %s", n, prev, b.Code)
				}
				seen[n] = b.Code
			}
		}
	}
	if len(vatBoxes) != 29 {
		t.Errorf("got %d boxes, want 29", len(vatBoxes))
	}
}

func TestBuildVatReportScenario(t *testing.T) {
	r, err := BuildVatReport(scenarioPostings(), 2024, "Q1")
	if err != nil {
		t.Fatal(err)
	}
	b48, ok := r.Box("48")
	if !ok {
		t.Fatal("box 48 missing")
	}
	assertAmount(t, "box 48", b48.Amount, "200")
	if len(b48.Accounts) != 1 || b48.Accounts[0] != "2640" {
		t.Errorf("box 48 accounts = %v", b48.Accounts)
	}

	b49, ok := r.Box("49")
	if !ok {
		t.Fatal("box 49 missing")
	}
	assertAmount(t, "box 49", b49.Amount, "-200")
	assertAmount(t, "box 49 direct", r.Box49Direct, "-200")
	if !r.Correct {
		t.Errorf("cross-check failed: %s vs %s", r.Box49Computed, r.Box49Direct)
	}

	if _, ok := r.Box("10"); ok {
		t.Error("zero box 10 should be omitted")
	}
}

func TestBuildVatReportBox49(t *testing.T) {
	postings := []Posting{
		posting("1", "1930", "2024-03-05", 12500, 0),
		posting("1", "3001", "2024-03-05", 0, 10000),
		posting("1", "2611", "2024-03-05", 0, 2500),
		posting("2", "1930", "2024-03-06", 1120, 0),
		posting("2", "3002", "2024-03-06", 0, 1000),
		posting("2", "2621", "2024-03-06", 0, 120),
		posting("3", "4010", "2024-03-10", 4000, 0),
		posting("3", "2640", "2024-03-10", 1000, 0),
		posting("3", "1930", "2024-03-10", 0, 5000),
		posting("4", "4515", "2024-03-12", 2000, 0),
		posting("4", "2440", "2024-03-12", 0, 2000),
		posting("4", "2645", "2024-03-12", 500, 0),
		posting("4", "2614", "2024-03-12", 0, 500),
		// other periods and opening balances stay out
		posting("5", "2611", "2024-04-01", 0, 999),
		posting("5", "1930", "2024-04-01", 999, 0),
		opening("2650", "2024-01-01", 0, 3000),
	}

	r, err := BuildVatReport(postings, 2024, "03")
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"05": "11000",
		"10": "2500",
		"11": "120",
		"20": "2000",
		"30": "500",
		"48": "1500",
		"49": "1620",
	}
	if len(r.Boxes) != len(want) {
		t.Errorf("got %d boxes, want %d: %+v", len(r.Boxes), len(want), r.Boxes)
	}
	for code, amt := range want {
		b, ok := r.Box(code)
		if !ok {
			t.Errorf("box %s missing", code)
			continue
		}
		assertAmount(t, "box "+code, b.Amount, amt)
	}

	// computed box 49 is outgoing VAT less box 48
	assertAmount(t, "computed", r.Box49Computed, "1620")
	assertAmount(t, "direct", r.Box49Direct, "1620")
	if !r.Correct {
		t.Error("cross-check failed")
	}
}

// settledQuarterPostings is a Q1 sale and purchase whose VAT is settled
// against 2650 early in Q2, followed by a Q2 sale.
func settledQuarterPostings() []Posting {
	return []Posting{
		posting("1", "1930", "2024-02-01", 12500, 0),
		posting("1", "3001", "2024-02-01", 0, 10000),
		posting("1", "2611", "2024-02-01", 0, 2500),
		posting("2", "4010", "2024-03-01", 4000, 0),
		posting("2", "2640", "2024-03-01", 1000, 0),
		posting("2", "1930", "2024-03-01", 0, 5000),
		// Q1 settlement
		posting("3", "2611", "2024-04-12", 2500, 0),
		posting("3", "2640", "2024-04-12", 0, 1000),
		posting("3", "2650", "2024-04-12", 0, 1500),
		posting("4", "1930", "2024-05-02", 1250, 0),
		posting("4", "3001", "2024-05-02", 0, 1000),
		posting("4", "2611", "2024-05-02", 0, 250),
	}
}

func TestBuildVatReportSettlementInPeriod(t *testing.T) {
	tests := []struct {
		period string
		boxes  map[string]string
	}{
		{"Q1", map[string]string{"05": "10000", "10": "2500", "48": "1000", "49": "1500"}},
		{"Q2", map[string]string{"05": "1000", "10": "250", "49": "250"}},
		{"all", map[string]string{"05": "11000", "10": "2750", "48": "1000", "49": "1750"}},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			r, err := BuildVatReport(settledQuarterPostings(), 2024, tt.period)
			if err != nil {
				t.Fatal(err)
			}
			if len(r.Boxes) != len(tt.boxes) {
				t.Errorf("got %d boxes, want %d: %+v", len(r.Boxes), len(tt.boxes), r.Boxes)
			}
			for code, amt := range tt.boxes {
				b, ok := r.Box(code)
				if !ok {
					t.Errorf("box %s missing", code)
					continue
				}
				assertAmount(t, "box "+code, b.Amount, amt)
			}
			assertAmount(t, "direct", r.Box49Direct, tt.boxes["49"])
			if !r.Correct {
				t.Errorf("settlement flagged: computed %s, direct %s", r.Box49Computed, r.Box49Direct)
			}
		})
	}
}

func TestBuildVatReportSettlementAccountHasNoBox(t *testing.T) {
	postings := []Posting{
		posting("1", "2650", "2024-03-31", 0, 300),
		posting("1", "1930", "2024-03-31", 300, 0),
		// 2616 is a VAT account outside every box
		posting("2", "2616", "2024-03-31", 0, 40),
		posting("2", "1930", "2024-03-31", 40, 0),
	}
	r, err := BuildVatReport(postings, 2024, "Q1")
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Boxes) != 0 {
		t.Errorf("boxes = %+v, want none", r.Boxes)
	}
	assertAmount(t, "computed", r.Box49Computed, "0")
	assertAmount(t, "direct", r.Box49Direct, "0")
	if !r.Correct {
		t.Error("accounts outside box 49 must not raise a mismatch")
	}
}

func TestBuildVatReportOppositeSideIgnored(t *testing.T) {
	postings := []Posting{
		// a debit on an outgoing VAT account and a credit on input VAT
		posting("1", "2611", "2024-06-30", 300, 0),
		posting("1", "2640", "2024-06-30", 0, 300),
	}
	r, err := BuildVatReport(postings, 2024, "06")
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Boxes) != 0 {
		t.Errorf("boxes = %+v, want none", r.Boxes)
	}
}

func TestBuildVatReportEmptyAndInvalid(t *testing.T) {
	r, err := BuildVatReport(nil, 2024, "all")
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Boxes) != 0 || !r.Correct {
		t.Errorf("empty report = %+v", r)
	}
	if _, err := BuildVatReport(nil, 2024, "H1"); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("err = %v, want ErrInvalidPeriod", err)
	}
}
