package sales

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pratoquente/pratoquente-backend/internal/dataset"
	"github.com/pratoquente/pratoquente-backend/pkg/config"
	"github.com/pratoquente/pratoquente-backend/pkg/errors"
	"github.com/pratoquente/pratoquente-backend/pkg/logger"
	"github.com/pratoquente/pratoquente-backend/pkg/metrics"
	"github.com/pratoquente/pratoquente-backend/pkg/redis"
)

// RowsQuery selects the sale rows feeding a report. Store and channel
// filters hold display names, applied in memory after the cached range
// load so one cache entry serves every filter combination.
type RowsQuery struct {
	Start    time.Time
	End      time.Time
	Stores   []string
	Channels []string
}

// Fingerprint canonicalizes the date range for cache keying. Store and
// channel filters are deliberately excluded, they are applied after the
// cache read.
func (q RowsQuery) Fingerprint() string {
	payload := fmt.Sprintf("%d|%d", q.Start.UTC().Unix(), q.End.UTC().Unix())
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

type rowCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	RowsKey(fingerprint string) string
	HistoryKey() string
	DateLimitsKey() string
}

// Service reads sale data with a read-through cache in front of the
// repository. Cache failures degrade to direct reads.
type Service interface {
	Rows(ctx context.Context, query RowsQuery) (dataset.Rows, error)
	HistoryRows(ctx context.Context) (dataset.Rows, error)
	PaymentsForSales(ctx context.Context, saleIDs []uuid.UUID) ([]SalePayment, error)
	DateLimits(ctx context.Context) (DateLimits, error)
	Filters(ctx context.Context) (Filters, error)
	CustomerNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type service struct {
	repo    Repository
	cache   rowCache
	cfg     config.CacheConfig
	logg    *logger.Logger
	metrics *metrics.ReportMetrics
}

// NewService builds a sales service. The cache and metrics are optional,
// nil disables them.
func NewService(repo Repository, cache rowCache, cfg config.CacheConfig, logg *logger.Logger, reportMetrics *metrics.ReportMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:    repo,
		cache:   cache,
		cfg:     cfg,
		logg:    logg,
		metrics: reportMetrics,
	}, nil
}

func (s *service) Rows(ctx context.Context, query RowsQuery) (dataset.Rows, error) {
	rows, err := s.cachedRows(ctx, "rows",
		func(c rowCache) string { return c.RowsKey(query.Fingerprint()) },
		func(ctx context.Context) (dataset.Rows, error) {
			return s.repo.RowsForRange(ctx, query.Start, query.End)
		})
	if err != nil {
		return nil, err
	}
	return rows.FilterStores(query.Stores).FilterChannels(query.Channels), nil
}

// HistoryRows returns the full sale history, unwindowed. Customer
// recurrence scoring reads it so lapsed customers keep their complete
// order counts.
func (s *service) HistoryRows(ctx context.Context) (dataset.Rows, error) {
	return s.cachedRows(ctx, "history",
		func(c rowCache) string { return c.HistoryKey() },
		s.repo.AllRows)
}

func (s *service) cachedRows(ctx context.Context, label string, cacheKey func(rowCache) string, load func(context.Context) (dataset.Rows, error)) (dataset.Rows, error) {
	if !s.cacheEnabled() {
		return s.rowsFromRepo(ctx, load)
	}

	key := cacheKey(s.cache)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var rows dataset.Rows
		if err := json.Unmarshal([]byte(cached), &rows); err == nil {
			s.metrics.IncCacheHit(label)
			return rows, nil
		}
		s.logg.Warn(ctx, "discarding undecodable cached rows")
	} else if err != redis.Nil {
		s.logg.Warn(ctx, fmt.Sprintf("rows cache read failed: %v", err))
	}
	s.metrics.IncCacheMiss(label)

	rows, err := s.rowsFromRepo(ctx, load)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(rows); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), s.cfg.RowsTTL); err != nil {
			s.logg.Warn(ctx, fmt.Sprintf("rows cache write failed: %v", err))
		}
	}
	return rows, nil
}

func (s *service) rowsFromRepo(ctx context.Context, load func(context.Context) (dataset.Rows, error)) (dataset.Rows, error) {
	rows, err := load(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "loading sale rows")
	}
	return rows, nil
}

func (s *service) PaymentsForSales(ctx context.Context, saleIDs []uuid.UUID) ([]SalePayment, error) {
	payments, err := s.repo.PaymentsForSales(ctx, saleIDs)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "loading sale payments")
	}
	return payments, nil
}

func (s *service) DateLimits(ctx context.Context) (DateLimits, error) {
	if !s.cacheEnabled() {
		return s.dateLimitsFromRepo(ctx)
	}

	key := s.cache.DateLimitsKey()
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var limits DateLimits
		if err := json.Unmarshal([]byte(cached), &limits); err == nil {
			s.metrics.IncCacheHit("date_limits")
			return limits, nil
		}
	} else if err != redis.Nil {
		s.logg.Warn(ctx, fmt.Sprintf("date limits cache read failed: %v", err))
	}
	s.metrics.IncCacheMiss("date_limits")

	limits, err := s.dateLimitsFromRepo(ctx)
	if err != nil {
		return DateLimits{}, err
	}

	if encoded, err := json.Marshal(limits); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), s.cfg.DateLimitsTTL); err != nil {
			s.logg.Warn(ctx, fmt.Sprintf("date limits cache write failed: %v", err))
		}
	}
	return limits, nil
}

func (s *service) dateLimitsFromRepo(ctx context.Context) (DateLimits, error) {
	limits, err := s.repo.DateLimits(ctx)
	if err != nil {
		return DateLimits{}, errors.Wrap(errors.CodeDependency, err, "loading date limits")
	}
	return limits, nil
}

func (s *service) Filters(ctx context.Context) (Filters, error) {
	stores, err := s.repo.ListStores(ctx)
	if err != nil {
		return Filters{}, errors.Wrap(errors.CodeDependency, err, "listing stores")
	}
	channels, err := s.repo.ListChannels(ctx)
	if err != nil {
		return Filters{}, errors.Wrap(errors.CodeDependency, err, "listing channels")
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return Filters{}, errors.Wrap(errors.CodeDependency, err, "listing categories")
	}
	limits, err := s.DateLimits(ctx)
	if err != nil {
		return Filters{}, err
	}
	return Filters{
		Stores:     stores,
		Channels:   channels,
		Categories: categories,
		DateLimits: limits,
	}, nil
}

func (s *service) CustomerNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names, err := s.repo.CustomerNames(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "loading customer names")
	}
	return names, nil
}

func (s *service) cacheEnabled() bool {
	return s.cache != nil && !s.cfg.Disabled
}
