package app

import (
	"context"
	"strings"

	"pytech_site/internal/domain"
)

const DefaultCityPickerLimit = 18

// FilterCities keeps cities whose name contains term (case-insensitive),
// in catalog order, capped at limit after filtering. The term is used as
// typed: only "" matches every city, and surrounding spaces must match too.
// limit <= 0 yields an empty result.
func FilterCities(cities []domain.City, term string, limit int) []domain.City {
	if limit <= 0 {
		return []domain.City{}
	}
	needle := strings.ToLower(term)
	out := make([]domain.City, 0, min(limit, len(cities)))
	for _, c := range cities {
		if needle != "" && !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

type CityLister interface {
	ListCities(ctx context.Context) ([]domain.City, error)
}

// Directory backs the city picker.
type Directory struct {
	cities       CityLister
	defaultLimit int
}

func NewDirectory(src CityLister, defaultLimit int) *Directory {
	if defaultLimit <= 0 {
		defaultLimit = DefaultCityPickerLimit
	}
	return &Directory{cities: src, defaultLimit: defaultLimit}
}

// Search filters the catalog city list; limit <= 0 uses the directory default.
func (d *Directory) Search(ctx context.Context, term string, limit int) ([]domain.City, error) {
	if limit <= 0 {
		limit = d.defaultLimit
	}
	all, err := d.cities.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	return FilterCities(all, term, limit), nil
}
