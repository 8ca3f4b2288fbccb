package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventmanagement/internal/domain"
)

// DefaultFilterCacheTTL bounds how stale the filter dropdown values may get.
const DefaultFilterCacheTTL = 5 * time.Minute

type filterService struct {
	uow    domain.UnitOfWork
	cache  domain.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewFilterService creates a FilterService whose results are kept in cache for ttl.
func NewFilterService(uow domain.UnitOfWork, cache domain.Cache, ttl time.Duration, logger *slog.Logger) domain.FilterService {
	if ttl <= 0 {
		ttl = DefaultFilterCacheTTL
	}
	return &filterService{uow: uow, cache: cache, ttl: ttl, logger: logger}
}

func (s *filterService) Options(ctx context.Context, kind string) ([]string, error) {
	var load func(context.Context) ([]string, error)
	switch kind {
	case domain.FilterVenue:
		load = s.uow.Venues().ListNames
	case domain.FilterPerformer:
		load = s.uow.Performers().ListNames
	case domain.FilterDate:
		load = s.eventDates
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("filter must be one of %s, %s, %s", domain.FilterVenue, domain.FilterDate, domain.FilterPerformer))
	}
	opts, err := cached(ctx, s, filterCacheKey(kind), load)
	if err != nil {
		return nil, fmt.Errorf("filter options %s: %w", kind, err)
	}
	return opts, nil
}

func filterCacheKey(kind string) string { return "filter:" + kind }

type filterInvalidator struct {
	cache  domain.Cache
	logger *slog.Logger
}

// NewFilterInvalidator returns the invalidator paired with a FilterService sharing cache.
func NewFilterInvalidator(cache domain.Cache, logger *slog.Logger) domain.FilterInvalidator {
	return &filterInvalidator{cache: cache, logger: logger}
}

// Invalidate deletes the cached options of kinds. A failed delete is logged;
// the entry then expires with its TTL.
func (i *filterInvalidator) Invalidate(ctx context.Context, kinds ...string) {
	if len(kinds) == 0 {
		return
	}
	keys := make([]string, len(kinds))
	for n, kind := range kinds {
		keys[n] = filterCacheKey(kind)
	}
	if err := i.cache.Delete(ctx, keys...); err != nil {
		i.logger.WarnContext(ctx, "cache invalidate failed", "keys", keys, "err", err)
	}
}

func (s *filterService) eventDates(ctx context.Context) ([]string, error) {
	dates, err := s.uow.Events().ListDates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out, nil
}

// cached returns the value stored under key or loads and stores it.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, s *filterService, key string, load func(context.Context) (T, error)) (T, error) {
	var v T
	hit, err := s.cache.Get(ctx, key, &v)
	if err != nil {
		s.logger.WarnContext(ctx, "cache get failed", "key", key, "err", err)
	}
	if hit {
		return v, nil
	}
	v, err = load(ctx)
	if err != nil {
		return v, err
	}
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "cache set failed", "key", key, "err", err)
	}
	return v, nil
}
