package domain

import "context"

// CatalogReader is the read side of the catalog repository.
// Implementations return ErrNotFound for a missing slug and wrap
// transport failures with ErrSourceUnavailable.
type CatalogReader interface {
	GetService(ctx context.Context, slug string) (Service, error)
	GetCity(ctx context.Context, slug string) (City, error)
	ListServices(ctx context.Context) ([]Service, error)
	ListCities(ctx context.Context) ([]City, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// EnquiryStore is the persistence sink of the lead intake pipeline.
type EnquiryStore interface {
	SaveEnquiry(ctx context.Context, e Enquiry) error
}

// MessagingSink builds the operator hand-off for a formatted enquiry.
// The returned URI is opened by the client; there is no delivery receipt.
type MessagingSink interface {
	HandOff(text string) (string, error)
}
