package reporting

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simonvc/huvudbok/internal/ledger"
)

type fakeSource struct {
	postings []ledger.Posting
	calls    int
	years    [][]int
	err      error
}

func (f *fakeSource) ListPostings(_ context.Context, years ...int) ([]ledger.Posting, error) {
	f.calls++
	f.years = append(f.years, years)
	if f.err != nil {
		return nil, f.err
	}
	var out []ledger.Posting
	for _, p := range f.postings {
		for _, y := range years {
			if len(p.TransactionDate) >= 4 && p.TransactionDate[:4] == strconv.Itoa(y) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func post(txn, account, date string, debit, credit int64) ledger.Posting {
	return ledger.Posting{
		TransactionID:   txn,
		AccountNumber:   account,
		TransactionDate: date,
		Debit:           decimal.NewFromInt(debit),
		Credit:          decimal.NewFromInt(credit),
	}
}

func scenario() []ledger.Posting {
	return []ledger.Posting{
		post("1", "1930", "2024-02-15", 0, 1000),
		post("1", "6072", "2024-02-15", 800, 0),
		post("1", "2640", "2024-02-15", 200, 0),
		post("2", "1930", "2023-05-01", 500, 0),
		post("2", "3001", "2023-05-01", 0, 400),
		post("2", "2611", "2023-05-01", 0, 100),
	}
}

func TestBalanceSheetIsCached(t *testing.T) {
	src := &fakeSource{postings: scenario()}
	svc := NewService(src, 0)
	ctx := context.Background()

	bs, err := svc.BalanceSheet(ctx, 2024, "Q1")
	if err != nil {
		t.Fatal(err)
	}
	if !bs.Balanced || bs.Year != 2024 || bs.Period != "Q1" {
		t.Errorf("balance sheet = %+v", bs)
	}
	if _, err := svc.BalanceSheet(ctx, 2024, "Q1"); err != nil {
		t.Fatal(err)
	}
	if src.calls != 1 {
		t.Errorf("source called %d times, want 1", src.calls)
	}

	svc.Invalidate(BalanceSheetKey(2024, "Q1"))
	if _, err := svc.BalanceSheet(ctx, 2024, "Q1"); err != nil {
		t.Fatal(err)
	}
	if src.calls != 2 {
		t.Errorf("source called %d times after invalidate, want 2", src.calls)
	}
}

func TestBalanceSheetListsUnbalancedTransactions(t *testing.T) {
	src := &fakeSource{postings: []ledger.Posting{
		post("bad", "1930", "2024-01-05", 100, 0),
		post("bad", "3001", "2024-01-05", 0, 90),
	}}
	bs, err := NewService(src, 0).BalanceSheet(context.Background(), 2024, "all")
	if err != nil {
		t.Fatal(err)
	}
	if bs.Balanced {
		t.Error("unbalanced ledger reported as balanced")
	}
	if len(bs.UnbalancedTransactions) != 1 || bs.UnbalancedTransactions[0].TransactionID != "bad" {
		t.Errorf("unbalanced = %+v", bs.UnbalancedTransactions)
	}
}

func TestIncomeStatementLoadsComparisonYear(t *testing.T) {
	src := &fakeSource{postings: scenario()}
	is, err := NewService(src, 0).IncomeStatement(context.Background(), 2024)
	if err != nil {
		t.Fatal(err)
	}
	got := append([]int(nil), src.years[0]...)
	sort.Ints(got)
	if len(got) != 2 || got[0] != 2023 || got[1] != 2024 {
		t.Errorf("loaded years %v, want [2023 2024]", got)
	}
	if !is.Revenue.Total.Previous.Equal(decimal.NewFromInt(400)) {
		t.Errorf("previous revenue = %s", is.Revenue.Total.Previous)
	}
	if !is.NetResult.Current.Equal(decimal.NewFromInt(-800)) {
		t.Errorf("net result = %s", is.NetResult.Current)
	}
}

func TestVatReport(t *testing.T) {
	src := &fakeSource{postings: scenario()}
	r, err := NewService(src, 0).VatReport(context.Background(), 2024, "02")
	if err != nil {
		t.Fatal(err)
	}
	if b, ok := r.Box("48"); !ok || !b.Amount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("box 48 = %+v, %v", b, ok)
	}
}

func TestInvalidPeriodFailsBeforeLoading(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(src, 0)
	ctx := context.Background()

	if _, err := svc.BalanceSheet(ctx, 2024, "Q9"); !errors.Is(err, ledger.ErrInvalidPeriod) {
		t.Errorf("balance sheet err = %v", err)
	}
	if _, err := svc.VatReport(ctx, 2024, "13"); !errors.Is(err, ledger.ErrInvalidPeriod) {
		t.Errorf("vat err = %v", err)
	}
	if _, err := svc.IncomeStatement(ctx, 0); !errors.Is(err, ledger.ErrInvalidYear) {
		t.Errorf("income err = %v", err)
	}
	if src.calls != 0 {
		t.Errorf("source called %d times", src.calls)
	}
}

func TestSourceErrorIsWrapped(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := NewService(&fakeSource{err: boom}, 0).VatReport(context.Background(), 2024, "all")
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

func TestKeysForYear(t *testing.T) {
	keys := KeysForYear(2024)
	want := []string{"bs_2024_Q1", "bs_2024_all", "vat_2024_03", "is_2024", "is_2025"}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	for _, k := range want {
		if !set[k] {
			t.Errorf("KeysForYear(2024) missing %s", k)
		}
	}
	if set["is_2023"] || set["bs_2023_Q1"] {
		t.Error("KeysForYear(2024) includes another year's pages")
	}
	if len(keys) != 2*len(ledger.Periods)+2 {
		t.Errorf("len = %d", len(keys))
	}
}

func TestInvalidateYearsDropsComparisonStatement(t *testing.T) {
	src := &fakeSource{postings: scenario()}
	svc := NewService(src, -1)
	ctx := context.Background()

	if _, err := svc.IncomeStatement(ctx, 2024); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.IncomeStatement(ctx, 2022); err != nil {
		t.Fatal(err)
	}
	svc.InvalidateYears(2023)

	before := src.calls
	if _, err := svc.IncomeStatement(ctx, 2024); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.IncomeStatement(ctx, 2022); err != nil {
		t.Fatal(err)
	}
	if src.calls != before+1 {
		t.Errorf("expected only is_2024 to reload, got %d loads", src.calls-before)
	}
}

// gatedSource hands out a snapshot of its postings and, on the first call
// only, blocks after taking the snapshot until release is closed.
type gatedSource struct {
	mu       sync.Mutex
	postings []ledger.Posting
	started  chan struct{}
	release  chan struct{}
	once     sync.Once
}

func (g *gatedSource) add(p ...ledger.Posting) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.postings = append(g.postings, p...)
}

func (g *gatedSource) ListPostings(_ context.Context, years ...int) ([]ledger.Posting, error) {
	g.mu.Lock()
	snapshot := append([]ledger.Posting(nil), g.postings...)
	g.mu.Unlock()

	g.once.Do(func() {
		close(g.started)
		<-g.release
	})

	var out []ledger.Posting
	for _, p := range snapshot {
		for _, y := range years {
			if p.TransactionDate[:4] == strconv.Itoa(y) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func TestInvalidateDuringBuildIsNotCached(t *testing.T) {
	tests := []struct {
		name       string
		invalidate func(*Service)
	}{
		{"invalidate years", func(s *Service) { s.InvalidateYears(2024) }},
		{"flush", func(s *Service) { s.Flush() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &gatedSource{
				postings: scenario(),
				started:  make(chan struct{}),
				release:  make(chan struct{}),
			}
			svc := NewService(src, -1)
			ctx := context.Background()

			done := make(chan *ledger.BalanceSheet)
			go func() {
				bs, err := svc.BalanceSheet(ctx, 2024, ledger.PeriodAll)
				if err != nil {
					t.Error(err)
				}
				done <- bs
			}()

			<-src.started
			src.add(
				post("3", "1930", "2024-03-01", 5000, 0),
				post("3", "2081", "2024-03-01", 0, 5000),
			)
			tt.invalidate(svc)
			close(src.release)

			stale := <-done
			if stale == nil {
				t.Fatal("no balance sheet")
			}
			if !stale.TotalAssets.Equal(decimal.NewFromInt(-1000)) {
				t.Fatalf("in-flight total assets = %s, want -1000", stale.TotalAssets)
			}

			bs, err := svc.BalanceSheet(ctx, 2024, ledger.PeriodAll)
			if err != nil {
				t.Fatal(err)
			}
			if !bs.TotalAssets.Equal(decimal.NewFromInt(4000)) {
				t.Errorf("total assets = %s, want 4000", bs.TotalAssets)
			}
		})
	}
}

func TestBuildWithoutInvalidateIsCached(t *testing.T) {
	src := &gatedSource{
		postings: scenario(),
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	close(src.release)
	svc := NewService(src, -1)
	ctx := context.Background()

	if _, err := svc.VatReport(ctx, 2024, "Q1"); err != nil {
		t.Fatal(err)
	}
	// Invalidating an unrelated year leaves the page cached.
	svc.InvalidateYears(2022)
	src.add(post("4", "2640", "2024-02-20", 50, 0), post("4", "1930", "2024-02-20", 0, 50))

	r, err := svc.VatReport(ctx, 2024, "Q1")
	if err != nil {
		t.Fatal(err)
	}
	if b, _ := r.Box("48"); !b.Amount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("box 48 = %s, want cached 200", b.Amount)
	}
}
