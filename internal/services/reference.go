package services

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"flight-insights/internal/clients"
	"flight-insights/internal/domain"
	"flight-insights/internal/repo"

	"golang.org/x/sync/singleflight"
)

// ReferenceClient is the part of the provider API the selection UI needs
type ReferenceClient interface {
	FetchCountries(ctx context.Context) ([]clients.CountryEntry, error)
	FetchAirports(ctx context.Context, countryISO2 string) ([]clients.AirportEntry, error)
}

// ReferenceService memoizes country and airport lookups for the process lifetime
type ReferenceService struct {
	repo   *repo.CacheRepo
	client ReferenceClient
	// collapses concurrent first lookups of the same key into one upstream call
	group singleflight.Group
}

// NewReferenceService creates a new reference data service
func NewReferenceService(repo *repo.CacheRepo, client ReferenceClient) *ReferenceService {
	return &ReferenceService{repo: repo, client: client}
}

// Countries returns the selectable countries. The first call fetches them;
// every later call is served from the cache, fallback list included.
func (s *ReferenceService) Countries(ctx context.Context) []domain.Country {
	if countries, ok := s.repo.Countries(); ok {
		slog.Debug("using cached countries")
		return countries
	}

	v, _, _ := s.group.Do("countries", func() (interface{}, error) {
		if countries, ok := s.repo.Countries(); ok {
			return countries, nil
		}
		countries := s.loadCountries(context.WithoutCancel(ctx))
		s.repo.PutCountries(countries)
		return countries, nil
	})
	return slices.Clone(v.([]domain.Country))
}

func (s *ReferenceService) loadCountries(ctx context.Context) []domain.Country {
	entries, err := s.client.FetchCountries(ctx)
	if err != nil {
		slog.Error("error fetching countries, using fallback", slog.String("err", err.Error()))
		return fallbackCountries
	}

	countries := make([]domain.Country, 0, len(entries))
	for _, e := range entries {
		if e.ISO2 != "" && e.Name != "" {
			countries = append(countries, domain.Country{Code: e.ISO2, Name: e.Name})
		}
	}
	if len(countries) == 0 {
		slog.Warn("no countries data in api response, using fallback")
		return fallbackCountries
	}

	slices.SortStableFunc(countries, func(a, b domain.Country) int {
		return cmp.Compare(a.Name, b.Name)
	})

	// India is appended after sorting, not re-sorted into place.
	if !slices.ContainsFunc(countries, func(c domain.Country) bool { return c.Code == india.Code }) {
		countries = append(countries, india)
	}
	return countries
}

// Airports returns the airports of a country. Countries with a built-in list
// never reach the provider.
func (s *ReferenceService) Airports(ctx context.Context, countryCode string) []domain.Airport {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return []domain.Airport{}
	}

	if airports, ok := s.repo.Airports(code); ok {
		slog.Debug("using cached airports", slog.String("country", code))
		return airports
	}

	v, _, _ := s.group.Do("airports:"+code, func() (interface{}, error) {
		if airports, ok := s.repo.Airports(code); ok {
			return airports, nil
		}
		s.repo.PutAirports(code, s.loadAirports(context.WithoutCancel(ctx), code))
		airports, _ := s.repo.Airports(code)
		return airports, nil
	})
	return slices.Clone(v.([]domain.Airport))
}

func (s *ReferenceService) loadAirports(ctx context.Context, code string) []domain.Airport {
	if fallback, ok := fallbackAirports[code]; ok {
		return fallback
	}

	entries, err := s.client.FetchAirports(ctx, code)
	if err != nil {
		slog.Error("error fetching airports", slog.String("country", code), slog.String("err", err.Error()))
		return nil
	}

	airports := make([]domain.Airport, 0, len(entries))
	for _, e := range entries {
		if e.IataCode != "" {
			airports = append(airports, domain.Airport{IataCode: e.IataCode, Name: e.AirportName})
		}
	}
	if len(airports) == 0 {
		slog.Warn("no airports in api response", slog.String("country", code))
	}
	return airports
}
