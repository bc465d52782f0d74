// Package repo provides the process-lifetime reference data store
package repo

import (
	"slices"
	"sync"

	"flight-insights/internal/domain"
)

// CacheRepo holds country and airport lists for the lifetime of the process.
// Entries are never invalidated; a stored fallback is served like fetched data.
type CacheRepo struct {
	mu        sync.RWMutex
	countries []domain.Country
	hasList   bool
	airports  map[string][]domain.Airport
}

// NewCacheRepo creates a new cache repository
func NewCacheRepo() *CacheRepo {
	return &CacheRepo{airports: make(map[string][]domain.Airport)}
}

// Countries returns a copy of the stored country list and whether one was stored
func (r *CacheRepo) Countries() ([]domain.Country, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.hasList {
		return nil, false
	}
	return slices.Clone(r.countries), true
}

// PutCountries stores the country list
func (r *CacheRepo) PutCountries(countries []domain.Country) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countries = slices.Clone(countries)
	r.hasList = true
}

// Airports returns a copy of the stored airports of a country
func (r *CacheRepo) Airports(countryCode string) ([]domain.Airport, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	airports, ok := r.airports[countryCode]
	if !ok {
		return nil, false
	}
	return nonNil(slices.Clone(airports)), true
}

// PutAirports stores the airports of a country; an empty list is a valid entry
func (r *CacheRepo) PutAirports(countryCode string, airports []domain.Airport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.airports[countryCode] = nonNil(slices.Clone(airports))
}

// CountAirportPartitions reports how many countries have a stored airport list
func (r *CacheRepo) CountAirportPartitions() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.airports)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
