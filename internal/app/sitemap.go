package app

import (
	"context"

	"pytech_site/internal/domain"
)

type SitemapEntry struct {
	URL     string `json:"url"`
	Service string `json:"service"`
	City    string `json:"city"`
}

type Sitemap struct {
	TotalPages int            `json:"total_pages"`
	URLs       []SitemapEntry `json:"urls"`
}

// BuildSitemap lists every (service, city) page, services outermost, in catalog order.
func BuildSitemap(services []domain.Service, cities []domain.City) Sitemap {
	urls := make([]SitemapEntry, 0, len(services)*len(cities))
	for _, s := range services {
		for _, c := range cities {
			urls = append(urls, SitemapEntry{
				URL:     CanonicalPath(s.Slug, c.Slug),
				Service: s.Name,
				City:    c.Name,
			})
		}
	}
	return Sitemap{TotalPages: len(urls), URLs: urls}
}

func (s *Resolver) Sitemap(ctx context.Context) (Sitemap, error) {
	services, err := s.ListServices(ctx)
	if err != nil {
		return Sitemap{}, err
	}
	cities, err := s.ListCities(ctx)
	if err != nil {
		return Sitemap{}, err
	}
	return BuildSitemap(services, cities), nil
}
