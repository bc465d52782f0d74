// Package domain provides domain models for the application
package domain

import (
	"encoding/json"
	"time"
)

// Country is a selectable origin or destination country
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Airport is an airport inside a country partition
type Airport struct {
	IataCode string `json:"iata_code"`
	Name     string `json:"name"`
}

// MarshalJSON encodes an airport as an [iata_code, name] pair, the shape the
// selection page consumes.
func (a Airport) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{a.IataCode, a.Name})
}

// FlightRecord is one normalized flight, real or synthetic
type FlightRecord struct {
	Price        int    `json:"price"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	DepartDate   string `json:"depart_date"`
	DepartTime   string `json:"depart_time"`
	FlightNumber string `json:"flight_number"`
	Airline      string `json:"airline"`
}

// PriceTrendPoint is the mean price of one window date
type PriceTrendPoint struct {
	DepartDate string  `json:"depart_date"`
	MeanPrice  float64 `json:"mean_price"`
}

// RouteCount counts flights seen on one origin/destination pair
type RouteCount struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Count       int    `json:"count"`
}

// InsightResult is the payload returned for an analyze request
type InsightResult struct {
	AvgPrice      float64           `json:"avg_price"`
	PopularRoutes []RouteCount      `json:"popular_routes"`
	PriceTrends   []PriceTrendPoint `json:"price_trends"`
	Flights       []FlightRecord    `json:"flights"`
	SelectedDate  string            `json:"selected_date"`
	DateRange     []string          `json:"date_range"`
}

// Health represents health check response
type Health struct {
	Status string    `json:"status"`
	Now    time.Time `json:"now"`
}

// ErrorBody is the JSON body of every failed request
type ErrorBody struct {
	Error string `json:"error"`
}

// ErrorResponse creates an error response
func ErrorResponse(message string) ErrorBody {
	return ErrorBody{Error: message}
}
