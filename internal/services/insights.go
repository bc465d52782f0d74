package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"flight-insights/internal/clients"
	"flight-insights/internal/domain"
)

// ErrNoFlightData is returned when no date of the window produced a flight.
var ErrNoFlightData = errors.New("no flight data found for the selected date range")

const (
	windowRadius = 5
	// inputDateLayout also accepts unpadded months and days, e.g. 2024-3-5.
	inputDateLayout = "2006-1-2"
	// maxPrice bounds provider prices; anything above is treated as missing.
	maxPrice = math.MaxInt32
)

// FlightFetcher fetches the raw flights of one route on one date
type FlightFetcher interface {
	Fetch(ctx context.Context, origin, destination, date string, useMock bool) FetchResult
}

// InsightService turns per-date flights around a selected date into insights
type InsightService struct {
	source FlightFetcher
	rng    *lockedRand
	now    func() time.Time
}

// NewInsightService creates a new insight service
func NewInsightService(source FlightFetcher, opts ...Option) *InsightService {
	o := buildOptions(opts)
	return &InsightService{source: source, rng: newLockedRand(o.src), now: o.now}
}

// DateRange returns the 11 dates centered on selected. An unparseable
// selected date centers the window on today instead.
func DateRange(selected string, now time.Time) []string {
	center, err := time.Parse(inputDateLayout, selected)
	if err != nil {
		center = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	dates := make([]string, 0, 2*windowRadius+1)
	for i := -windowRadius; i <= windowRadius; i++ {
		dates = append(dates, center.AddDate(0, 0, i).Format(dateLayout))
	}
	return dates
}

// Analyze fetches every date of the window sequentially and summarizes the
// flights found. Dates without flights are skipped. The selected date is
// echoed as given; sample flights are matched on its canonical form.
func (s *InsightService) Analyze(ctx context.Context, origin, destination, selectedDate string, useMock bool) (*domain.InsightResult, error) {
	dates := DateRange(selectedDate, s.now())

	var flights []domain.FlightRecord
	trends := make([]domain.PriceTrendPoint, 0, len(dates))

	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analyze %s-%s: %w", origin, destination, err)
		}

		slog.Debug("fetching data", slog.String("date", date))
		res := s.source.Fetch(ctx, origin, destination, date, useMock)
		if res.Status != FetchOK || len(res.Entries) == 0 {
			slog.Warn(
				"skipping date",
				slog.String("date", date),
				slog.String("status", res.Status.String()),
				slog.Any("err", res.Err),
			)
			continue
		}

		daily := make([]int, 0, len(res.Entries))
		for _, entry := range res.Entries {
			record, ok := s.normalize(entry)
			if !ok {
				continue
			}
			daily = append(daily, record.Price)
			flights = append(flights, record)
		}

		if len(daily) > 0 {
			trends = append(trends, domain.PriceTrendPoint{
				DepartDate: date,
				MeanPrice:  round2(meanInt(daily)),
			})
		}
	}

	if len(flights) == 0 {
		return nil, ErrNoFlightData
	}

	match := selectedDate
	if d, err := time.Parse(inputDateLayout, selectedDate); err == nil {
		match = d.Format(dateLayout)
	}
	res := Summarize(flights, trends, match, dates)
	res.SelectedDate = selectedDate
	return res, nil
}

// normalize converts a provider entry into a FlightRecord. Entries without a
// flight object are dropped. Missing, negative, NaN or oversized prices get a
// random price in [150, 500].
func (s *InsightService) normalize(entry clients.ScheduleEntry) (domain.FlightRecord, bool) {
	if entry.Flight == nil {
		return domain.FlightRecord{}, false
	}

	record := domain.FlightRecord{
		FlightNumber: entry.Flight.IATA,
		DepartDate:   entry.FlightDate,
		DepartTime:   departTime(entry.Departure),
	}
	if entry.Airline != nil {
		record.Airline = entry.Airline.Name
	}
	if entry.Departure != nil {
		record.Origin = entry.Departure.IATA
	}
	if entry.Arrival != nil {
		record.Destination = entry.Arrival.IATA
	}

	if p := entry.Price; p != nil && *p >= 0 && *p < maxPrice {
		record.Price = int(*p)
	} else {
		record.Price = s.rng.between(150, 500)
	}
	return record, true
}

// departTime extracts HH:MM from an ISO timestamp, or "N/A".
func departTime(dep *clients.Endpoint) string {
	if dep == nil || dep.Scheduled == "" {
		return "N/A"
	}
	_, clock, ok := strings.Cut(dep.Scheduled, "T")
	if !ok || clock == "" {
		return "N/A"
	}
	if len(clock) > 5 {
		clock = clock[:5]
	}
	return clock
}

func meanInt(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
