package services

import (
	"fmt"
	"math"
	"time"

	"flight-insights/internal/clients"
)

const dateLayout = "2006-01-02"

var (
	mockAirlines = []string{
		"Qantas", "Virgin Australia", "American Airlines", "Delta", "United",
		"Emirates", "British Airways", "Air India", "IndiGo", "SpiceJet",
	}
	mockCarriers = []string{"QF", "VA", "AA", "DL", "UA", "EK", "BA", "AI", "6E", "SG"}
	mockMinutes  = []int{0, 15, 30, 45}
)

// MockGenerator synthesizes schedule entries with demo pricing
type MockGenerator struct {
	rng *lockedRand
	now func() time.Time
}

// NewMockGenerator creates a new mock flight generator
func NewMockGenerator(opts ...Option) *MockGenerator {
	o := buildOptions(opts)
	return &MockGenerator{rng: newLockedRand(o.src), now: o.now}
}

// Generate returns 3 to 7 flights for the route on date (YYYY-MM-DD)
func (g *MockGenerator) Generate(origin, destination, date string) ([]clients.ScheduleEntry, error) {
	now := g.now()
	day, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return nil, fmt.Errorf("mock flights for %q: %w", date, err)
	}
	modifier := PriceModifier(day, now)

	count := g.rng.between(3, 7)
	entries := make([]clients.ScheduleEntry, 0, count)
	for range count {
		flightNumber := fmt.Sprintf("%s%d", pick(g.rng, mockCarriers), g.rng.between(100, 999))
		price := math.Floor(float64(g.rng.between(200, 800)) * modifier)
		hour := g.rng.between(6, 22)
		minute := pick(g.rng, mockMinutes)

		entries = append(entries, clients.ScheduleEntry{
			FlightDate: date,
			Flight:     &clients.FlightRef{IATA: flightNumber},
			Airline:    &clients.AirlineRef{Name: pick(g.rng, mockAirlines)},
			Departure: &clients.Endpoint{
				IATA:      origin,
				Scheduled: fmt.Sprintf("%sT%02d:%02d:00+00:00", date, hour, minute),
			},
			Arrival: &clients.Endpoint{IATA: destination},
			Price:   &price,
		})
	}
	return entries, nil
}

// PriceModifier raises prices close to departure and on weekends:
// x1.3 under 3 days out, x1.1 under 7, then x1.2 on Saturday or Sunday.
func PriceModifier(day, now time.Time) float64 {
	daysOut := int(math.Floor(day.Sub(now).Hours() / 24))

	modifier := 1.0
	switch {
	case daysOut < 3:
		modifier = 1.3
	case daysOut < 7:
		modifier = 1.1
	}

	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		modifier *= 1.2
	}
	return modifier
}
