package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pytech_site/internal/domain"
)

// Resolver is the content resolver: it turns a (service, city) slug pair into
// a LookupResult using a read-through cache in front of the catalog.
type Resolver struct {
	catalog  domain.CatalogReader
	cache    domain.Cache
	cacheTTL time.Duration
	version  string
}

func NewResolver(c domain.CatalogReader, cache domain.Cache, version string, ttl time.Duration) *Resolver {
	if version == "" {
		version = "v1"
	}
	return &Resolver{catalog: c, cache: cache, cacheTTL: ttl, version: version}
}

func (s *Resolver) Resolve(ctx context.Context, serviceSlug, citySlug string) domain.LookupResult {
	serviceSlug, citySlug = normalizeSlug(serviceSlug), normalizeSlug(citySlug)

	var (
		wg      sync.WaitGroup
		svc     domain.Service
		city    domain.City
		svcErr  error
		cityErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		svc, svcErr = s.Service(ctx, serviceSlug)
	}()
	go func() {
		defer wg.Done()
		city, cityErr = s.City(ctx, citySlug)
	}()
	wg.Wait()

	return joinLookup(svc, svcErr, city, cityErr)
}

// joinLookup: "could not ask" wins over "does not exist".
func joinLookup(svc domain.Service, svcErr error, city domain.City, cityErr error) domain.LookupResult {
	if unavailable(svcErr) {
		return domain.LookupResult{Status: domain.LookupSourceUnavailable, Err: svcErr}
	}
	if unavailable(cityErr) {
		return domain.LookupResult{Status: domain.LookupSourceUnavailable, Err: cityErr}
	}
	switch {
	case svcErr != nil && cityErr != nil:
		return domain.LookupResult{Status: domain.LookupBothNotFound}
	case svcErr != nil:
		return domain.LookupResult{Status: domain.LookupServiceNotFound}
	case cityErr != nil:
		return domain.LookupResult{Status: domain.LookupCityNotFound}
	}
	return domain.LookupResult{Status: domain.LookupFound, Service: svc, City: city}
}

func unavailable(err error) bool {
	return err != nil && !errors.Is(err, domain.ErrNotFound)
}

func (s *Resolver) Service(ctx context.Context, slug string) (domain.Service, error) {
	if slug == "" {
		return domain.Service{}, domain.ErrNotFound
	}
	return readThrough(ctx, s, s.key("service", slug), func() (domain.Service, error) {
		return s.catalog.GetService(ctx, slug)
	})
}

func (s *Resolver) City(ctx context.Context, slug string) (domain.City, error) {
	if slug == "" {
		return domain.City{}, domain.ErrNotFound
	}
	return readThrough(ctx, s, s.key("city", slug), func() (domain.City, error) {
		return s.catalog.GetCity(ctx, slug)
	})
}

func (s *Resolver) ListServices(ctx context.Context) ([]domain.Service, error) {
	out, err := readThrough(ctx, s, s.key("services", ""), func() ([]domain.Service, error) {
		return s.catalog.ListServices(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return out, nil
}

func (s *Resolver) ListCities(ctx context.Context) ([]domain.City, error) {
	out, err := readThrough(ctx, s, s.key("cities", ""), func() ([]domain.City, error) {
		return s.catalog.ListCities(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return out, nil
}

func (s *Resolver) key(kind, slug string) string {
	if slug == "" {
		return fmt.Sprintf("catalog:%s:%s", s.version, kind)
	}
	return fmt.Sprintf("catalog:%s:%s:%s", s.version, kind, slug)
}

// readThrough serves from cache when possible. Only successful catalog reads
// are stored; cache failures fall through to the catalog.
func readThrough[T any](ctx context.Context, s *Resolver, key string, fetch func() (T, error)) (T, error) {
	var v T
	if s.cache != nil {
		if ok, err := s.cache.Get(ctx, key, &v); err == nil && ok {
			return v, nil
		}
	}
	v, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
	}
	return v, nil
}

func normalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
