package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pytech_site/internal/domain"
)

// Repo is the enquiry store and, with CATALOG_SOURCE=mysql, the catalog reader.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *Repo) SaveEnquiry(ctx context.Context, e domain.Enquiry) error {
	_, err := r.db.ExecContext(ctx, insertEnquirySQL,
		e.ID,
		e.Name,
		e.Email,
		e.Phone,
		e.City,
		e.Service,
		valStr(e.Message), // optional
		e.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert enquiry %s: %w", e.ID, err)
	}
	return nil
}

// ---- catalog reads ----
// Driver errors are reported as domain.ErrSourceUnavailable so the resolver
// can tell them apart from a missing row.

type rowScanner interface{ Scan(dest ...any) error }

func (r *Repo) GetService(ctx context.Context, slug string) (domain.Service, error) {
	s, err := scanService(r.db.QueryRowContext(ctx, getServiceSQL, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Service{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Service{}, fmt.Errorf("%w: get service %s: %v", domain.ErrSourceUnavailable, slug, err)
	}
	return s, nil
}

func (r *Repo) GetCity(ctx context.Context, slug string) (domain.City, error) {
	c, err := scanCity(r.db.QueryRowContext(ctx, getCitySQL, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.City{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.City{}, fmt.Errorf("%w: get city %s: %v", domain.ErrSourceUnavailable, slug, err)
	}
	return c, nil
}

func (r *Repo) ListServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := r.db.QueryContext(ctx, listServicesSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: list services: %v", domain.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	var out []domain.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan service: %v", domain.ErrSourceUnavailable, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list services: %v", domain.ErrSourceUnavailable, err)
	}
	return out, nil
}

func (r *Repo) ListCities(ctx context.Context) ([]domain.City, error) {
	rows, err := r.db.QueryContext(ctx, listCitiesSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: list cities: %v", domain.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	var out []domain.City
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan city: %v", domain.ErrSourceUnavailable, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list cities: %v", domain.ErrSourceUnavailable, err)
	}
	return out, nil
}

func scanService(row rowScanner) (domain.Service, error) {
	var (
		s               domain.Service
		shortDesc, desc sql.NullString
		features, steps []byte
		keywords        []byte
	)
	if err := row.Scan(&s.Slug, &s.Name, &shortDesc, &desc, &features, &steps, &keywords); err != nil {
		return domain.Service{}, err
	}
	s.ShortDescription = shortDesc.String
	s.Description = desc.String
	if err := unmarshalJSONCol(features, &s.Features); err != nil {
		return domain.Service{}, fmt.Errorf("features: %w", err)
	}
	if err := unmarshalJSONCol(steps, &s.ProcessSteps); err != nil {
		return domain.Service{}, fmt.Errorf("process_steps: %w", err)
	}
	if err := unmarshalJSONCol(keywords, &s.Keywords); err != nil {
		return domain.Service{}, fmt.Errorf("keywords: %w", err)
	}
	if s.Features == nil {
		s.Features = []string{}
	}
	return s, nil
}

func scanCity(row rowScanner) (domain.City, error) {
	var (
		c         domain.City
		tier      sql.NullString
		areasJSON []byte
	)
	if err := row.Scan(&c.Slug, &c.Name, &c.State, &tier, &areasJSON); err != nil {
		return domain.City{}, err
	}
	c.Tier = tier.String
	if err := unmarshalJSONCol(areasJSON, &c.Areas); err != nil {
		return domain.City{}, fmt.Errorf("areas: %w", err)
	}
	if c.Areas == nil {
		c.Areas = []string{}
	}
	return c, nil
}

// unmarshalJSONCol treats NULL and empty columns as "no value".
func unmarshalJSONCol(b []byte, dst any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}
