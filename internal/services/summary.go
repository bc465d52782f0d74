package services

import (
	"slices"

	"flight-insights/internal/domain"
)

const (
	maxPopularRoutes = 5
	maxSampleFlights = 10
)

// Summarize builds the insight payload from the flights of a whole window.
func Summarize(flights []domain.FlightRecord, trends []domain.PriceTrendPoint, selectedDate string, window []string) *domain.InsightResult {
	if trends == nil {
		trends = []domain.PriceTrendPoint{}
	}
	return &domain.InsightResult{
		AvgPrice:      averagePrice(flights),
		PopularRoutes: popularRoutes(flights),
		PriceTrends:   trends,
		Flights:       sampleFlights(flights, selectedDate),
		SelectedDate:  selectedDate,
		DateRange:     window,
	}
}

func averagePrice(flights []domain.FlightRecord) float64 {
	if len(flights) == 0 {
		return 0
	}
	sum := 0
	for _, f := range flights {
		sum += f.Price
	}
	return round2(float64(sum) / float64(len(flights)))
}

// popularRoutes counts flights per route, busiest first. Equal counts keep
// the order in which the routes were first seen.
func popularRoutes(flights []domain.FlightRecord) []domain.RouteCount {
	type route struct{ origin, destination string }

	index := make(map[route]int)
	routes := make([]domain.RouteCount, 0)
	for _, f := range flights {
		key := route{f.Origin, f.Destination}
		if i, ok := index[key]; ok {
			routes[i].Count++
			continue
		}
		index[key] = len(routes)
		routes = append(routes, domain.RouteCount{Origin: f.Origin, Destination: f.Destination, Count: 1})
	}

	slices.SortStableFunc(routes, func(a, b domain.RouteCount) int {
		return b.Count - a.Count
	})
	if len(routes) > maxPopularRoutes {
		routes = routes[:maxPopularRoutes]
	}
	return routes
}

// sampleFlights prefers flights departing on the selected date and falls back
// to the start of the window when there are none.
func sampleFlights(flights []domain.FlightRecord, selectedDate string) []domain.FlightRecord {
	sample := make([]domain.FlightRecord, 0, maxSampleFlights)
	for _, f := range flights {
		if f.DepartDate == selectedDate {
			sample = append(sample, f)
			if len(sample) == maxSampleFlights {
				return sample
			}
		}
	}
	if len(sample) > 0 {
		return sample
	}

	return append(sample, flights[:min(len(flights), maxSampleFlights)]...)
}
