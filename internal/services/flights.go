package services

import (
	"context"
	"log/slog"

	"flight-insights/internal/clients"
)

// FetchStatus is the outcome kind of a single-date fetch
type FetchStatus int

const (
	FetchOK FetchStatus = iota
	FetchEmpty
	FetchFailed
)

func (s FetchStatus) String() string {
	switch s {
	case FetchOK:
		return "ok"
	case FetchEmpty:
		return "empty"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DataOrigin tells whether entries came from the provider or the generator
type DataOrigin string

const (
	OriginUpstream DataOrigin = "upstream"
	OriginMock     DataOrigin = "mock"
)

// FetchResult carries the raw entries for one origin/destination/date
type FetchResult struct {
	Status  FetchStatus
	Origin  DataOrigin
	Entries []clients.ScheduleEntry
	Err     error
}

// ScheduleClient is the part of the provider API that lists flights
type ScheduleClient interface {
	FetchSchedules(ctx context.Context, depIATA, arrIATA, flightDate string) ([]clients.ScheduleEntry, error)
}

// FlightSource serves schedule entries for one date, substituting mock data
// whenever the provider cannot
type FlightSource struct {
	client ScheduleClient
	mock   *MockGenerator
}

// NewFlightSource creates a new flight data source
func NewFlightSource(client ScheduleClient, mock *MockGenerator) *FlightSource {
	return &FlightSource{client: client, mock: mock}
}

// Fetch returns the flights of a route on date. Provider failures and empty
// answers are replaced by generated data and never reported to the caller.
func (s *FlightSource) Fetch(ctx context.Context, origin, destination, date string, useMock bool) FetchResult {
	log := slog.With(
		slog.String("origin", origin),
		slog.String("destination", destination),
		slog.String("date", date),
	)

	if useMock || s.client == nil {
		log.Info("using mock data")
		return s.synthesize(origin, destination, date)
	}

	entries, err := s.client.FetchSchedules(ctx, origin, destination, date)
	if err != nil {
		log.Error("error fetching flight data, using mock data", slog.String("err", err.Error()))
		return s.synthesize(origin, destination, date)
	}
	if len(entries) == 0 {
		log.Warn("no flight data from api, using mock data")
		return s.synthesize(origin, destination, date)
	}

	return FetchResult{Status: FetchOK, Origin: OriginUpstream, Entries: entries}
}

func (s *FlightSource) synthesize(origin, destination, date string) FetchResult {
	entries, err := s.mock.Generate(origin, destination, date)
	if err != nil {
		return FetchResult{Status: FetchFailed, Origin: OriginMock, Err: err}
	}
	if len(entries) == 0 {
		return FetchResult{Status: FetchEmpty, Origin: OriginMock}
	}
	return FetchResult{Status: FetchOK, Origin: OriginMock, Entries: entries}
}
