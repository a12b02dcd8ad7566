package app_test

import (
	"context"
	"encoding/json"
	"sync"

	"pytech_site/internal/domain"
)

// ---- fakes ----

type fakeCatalog struct {
	mu       sync.Mutex
	services []domain.Service
	cities   []domain.City
	errs     map[string]error // slug -> forced error
	listErr  error
	calls    map[string]int
}

func (f *fakeCatalog) hit(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[key]++
	return f.errs[key]
}

func (f *fakeCatalog) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeCatalog) GetService(ctx context.Context, slug string) (domain.Service, error) {
	if err := f.hit(slug); err != nil {
		return domain.Service{}, err
	}
	for _, s := range f.services {
		if s.Slug == slug {
			return s, nil
		}
	}
	return domain.Service{}, domain.ErrNotFound
}

func (f *fakeCatalog) GetCity(ctx context.Context, slug string) (domain.City, error) {
	if err := f.hit(slug); err != nil {
		return domain.City{}, err
	}
	for _, c := range f.cities {
		if c.Slug == slug {
			return c, nil
		}
	}
	return domain.City{}, domain.ErrNotFound
}

func (f *fakeCatalog) ListServices(ctx context.Context) ([]domain.Service, error) {
	if err := f.hit("#services"); err != nil {
		return nil, err
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.services, nil
}

func (f *fakeCatalog) ListCities(ctx context.Context) ([]domain.City, error) {
	if err := f.hit("#cities"); err != nil {
		return nil, err
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.cities, nil
}

// fakeCache round-trips through JSON like the Redis adapter does.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok
}

func websiteDesign() domain.Service {
	return domain.Service{
		Slug:             "website-design",
		Name:             "Website Design",
		ShortDescription: "Websites that convert",
		Description:      "Custom, responsive websites built for speed and search.",
		Features:         []string{"SEO", "Responsive Design"},
		ProcessSteps: []domain.ProcessStep{
			{Step: 1, Title: "Consultation", Description: "Understand your goals"},
			{Step: 2, Title: "Design", Description: "Wireframes and mockups"},
			{Step: 3, Title: "Launch", Description: "Go live"},
		},
	}
}

func delhi() domain.City {
	return domain.City{Slug: "delhi", Name: "Delhi", State: "Delhi", Areas: []string{"Connaught Place"}}
}

func seedCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: []domain.Service{websiteDesign()},
		cities: []domain.City{
			delhi(),
			{Slug: "mumbai", Name: "Mumbai", State: "Maharashtra", Areas: []string{"Andheri"}},
			{Slug: "new-delhi", Name: "New Delhi", State: "Delhi", Areas: []string{}},
		},
	}
}
