package app

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"pytech_site/internal/domain"
)

type WarmReport struct {
	Services int
	Cities   int
	Pages    int
	ByStatus map[string]int // lookup status -> number of pairs
}

// Warmer pre-populates the resolver cache by resolving every (service, city) pair.
type Warmer struct {
	r       *Resolver
	workers int64
}

func NewWarmer(r *Resolver, workers int) *Warmer {
	if workers <= 0 {
		workers = 8
	}
	return &Warmer{r: r, workers: int64(workers)}
}

// Warm fails only when a listing cannot be read or ctx ends; per-pair
// failures are counted in the report.
func (w *Warmer) Warm(ctx context.Context) (WarmReport, error) {
	services, err := w.r.ListServices(ctx)
	if err != nil {
		return WarmReport{}, err
	}
	cities, err := w.r.ListCities(ctx)
	if err != nil {
		return WarmReport{}, err
	}

	rep := WarmReport{
		Services: len(services),
		Cities:   len(cities),
		Pages:    len(services) * len(cities),
		ByStatus: map[string]int{},
	}
	var mu sync.Mutex
	count := func(st domain.LookupStatus) {
		mu.Lock()
		rep.ByStatus[st.String()]++
		mu.Unlock()
	}

	sem := semaphore.NewWeighted(w.workers)
	g, gctx := errgroup.WithContext(ctx)
loop:
	for _, s := range services {
		for _, c := range cities {
			// acquire before launching the goroutine; release inside it
			if err := sem.Acquire(gctx, 1); err != nil {
				break loop
			}
			svc, city := s.Slug, c.Slug
			g.Go(func() error {
				defer sem.Release(1)
				count(w.r.Resolve(gctx, svc, city).Status)
				return nil
			})
		}
	}
	_ = g.Wait()
	return rep, ctx.Err()
}
