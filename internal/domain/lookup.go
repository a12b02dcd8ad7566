package domain

import "fmt"

type LookupStatus int

const (
	LookupFound LookupStatus = iota
	LookupServiceNotFound
	LookupCityNotFound
	LookupBothNotFound
	LookupSourceUnavailable
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupServiceNotFound:
		return "service_not_found"
	case LookupCityNotFound:
		return "city_not_found"
	case LookupBothNotFound:
		return "both_not_found"
	case LookupSourceUnavailable:
		return "source_unavailable"
	}
	return fmt.Sprintf("lookup_status(%d)", int(s))
}

// LookupResult is the tagged outcome of resolving a (service, city) key pair.
// Service and City are only meaningful when Status is LookupFound.
type LookupResult struct {
	Status  LookupStatus
	Service Service
	City    City
	Err     error // set for LookupSourceUnavailable
}

func (r LookupResult) Found() bool { return r.Status == LookupFound }

// NotFound reports any of the three "catalog says no" variants.
func (r LookupResult) NotFound() bool {
	switch r.Status {
	case LookupServiceNotFound, LookupCityNotFound, LookupBothNotFound:
		return true
	}
	return false
}

// MustFound returns the resolved pair and panics for any other variant.
// Reaching the panic is a caller bug: branch on Status first.
func (r LookupResult) MustFound() (Service, City) {
	if r.Status != LookupFound {
		panic(fmt.Sprintf("domain: MustFound called on %s lookup result", r.Status))
	}
	return r.Service, r.City
}
