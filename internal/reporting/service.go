// Package reporting loads postings and builds reports, caching the results
// until the postings they depend on change.
package reporting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/simonvc/huvudbok/internal/ledger"
	"go.uber.org/zap"
)

const (
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

// Cache key formats. Years are zero padded so keys sort naturally.
const (
	ckBalanceSheet    = "bs_%04d_%s"
	ckIncomeStatement = "is_%04d"
	ckVatReport       = "vat_%04d_%s"
)

// PostingSource supplies the postings of whole fiscal years.
type PostingSource interface {
	ListPostings(ctx context.Context, years ...int) ([]ledger.Posting, error)
}

type Service struct {
	source PostingSource
	cache  *cache.Cache
	ttl    time.Duration

	// generations counts invalidations per key and epoch counts flushes. A
	// report is only cached if neither moved while it was being built.
	mu          sync.Mutex
	generations map[string]uint64
	epoch       uint64
}

// NewService returns a Service caching reports for ttl. A zero ttl uses
// DefaultCacheExpiration; a negative one never expires.
func NewService(source PostingSource, ttl time.Duration) *Service {
	if ttl == 0 {
		ttl = DefaultCacheExpiration
	}
	if ttl < 0 {
		ttl = cache.NoExpiration
	}
	return &Service{
		source: source,
		cache:       cache.New(ttl, CacheCleanupInterval),
		ttl:         ttl,
		generations: make(map[string]uint64),
	}
}

func BalanceSheetKey(year int, period string) string {
	return fmt.Sprintf(ckBalanceSheet, year, period)
}

func IncomeStatementKey(year int) string {
	return fmt.Sprintf(ckIncomeStatement, year)
}

func VatReportKey(year int, period string) string {
	return fmt.Sprintf(ckVatReport, year, period)
}

// KeysForYear lists every cached report a posting dated in year can
// change: the year's balance sheets and VAT returns for all periods, and
// the income statements of year and year+1 (which shows year as its
// comparison column).
func KeysForYear(year int) []string {
	keys := make([]string, 0, 2*len(ledger.Periods)+2)
	for _, p := range ledger.Periods {
		keys = append(keys, BalanceSheetKey(year, p), VatReportKey(year, p))
	}
	return append(keys, IncomeStatementKey(year), IncomeStatementKey(year+1))
}

// Invalidate drops the given cache keys. Reports for those keys that are
// still being built when Invalidate runs are returned but not cached.
func (s *Service) Invalidate(keys ...string) {
	s.mu.Lock()
	for _, key := range keys {
		s.generations[key]++
		s.cache.Delete(key)
	}
	s.mu.Unlock()
	zap.L().Debug("report cache invalidated", zap.Strings("keys", keys))
}

// InvalidateYears drops every report affected by postings in the given years.
func (s *Service) InvalidateYears(years ...int) {
	for _, y := range years {
		s.Invalidate(KeysForYear(y)...)
	}
}

// Flush empties the cache.
func (s *Service) Flush() {
	s.mu.Lock()
	s.epoch++
	s.cache.Flush()
	s.mu.Unlock()
}

func (s *Service) generation(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch + s.generations[key]
}

// put caches v under key unless the key was invalidated after gen was read.
func (s *Service) put(key string, gen uint64, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch+s.generations[key] != gen {
		zap.L().Debug("report invalidated while building, not cached", zap.String("key", key))
		return
	}
	s.cache.Set(key, v, s.ttl)
}

func (s *Service) BalanceSheet(ctx context.Context, year int, period string) (*ledger.BalanceSheet, error) {
	if err := ledger.ValidatePeriod(year, period); err != nil {
		return nil, err
	}
	key := BalanceSheetKey(year, period)
	gen := s.generation(key)
	if cached, found := s.cache.Get(key); found {
		return cached.(*ledger.BalanceSheet), nil
	}

	postings, err := s.source.ListPostings(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("load postings: %w", err)
	}
	filtered, err := ledger.FilterByPeriod(postings, year, period)
	if err != nil {
		return nil, err
	}

	bs := ledger.BuildBalanceSheet(ledger.Aggregate(filtered, ledger.Classify), ledger.Classify)
	bs.Year = year
	bs.Period = period
	bs.UnbalancedTransactions = ledger.UnbalancedTransactions(filtered)
	if !bs.Balanced {
		zap.L().Warn("balance sheet does not balance",
			zap.Int("year", year),
			zap.String("period", period),
			zap.String("difference", bs.Difference.StringFixed(2)),
			zap.Int("unbalanced_transactions", len(bs.UnbalancedTransactions)),
		)
	}

	s.put(key, gen, bs)
	return bs, nil
}

func (s *Service) IncomeStatement(ctx context.Context, year int) (*ledger.IncomeStatement, error) {
	if err := ledger.ValidatePeriod(year, ledger.PeriodAll); err != nil {
		return nil, err
	}
	key := IncomeStatementKey(year)
	gen := s.generation(key)
	if cached, found := s.cache.Get(key); found {
		return cached.(*ledger.IncomeStatement), nil
	}

	years := []int{year}
	if year > 1 {
		years = append(years, year-1)
	}
	postings, err := s.source.ListPostings(ctx, years...)
	if err != nil {
		return nil, fmt.Errorf("load postings: %w", err)
	}

	is, err := ledger.BuildIncomeStatement(postings, year)
	if err != nil {
		return nil, err
	}

	s.put(key, gen, is)
	return is, nil
}

func (s *Service) VatReport(ctx context.Context, year int, period string) (*ledger.VatReport, error) {
	if err := ledger.ValidatePeriod(year, period); err != nil {
		return nil, err
	}
	key := VatReportKey(year, period)
	gen := s.generation(key)
	if cached, found := s.cache.Get(key); found {
		return cached.(*ledger.VatReport), nil
	}

	postings, err := s.source.ListPostings(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("load postings: %w", err)
	}

	r, err := ledger.BuildVatReport(postings, year, period)
	if err != nil {
		return nil, err
	}
	if !r.Correct {
		zap.L().Warn("vat box 49 cross-check failed",
			zap.Int("year", year),
			zap.String("period", period),
			zap.String("computed", r.Box49Computed.StringFixed(2)),
			zap.String("direct", r.Box49Direct.StringFixed(2)),
		)
	}

	s.put(key, gen, r)
	return r, nil
}
