package clients

import "fmt"

// APIError is the error object the provider embeds in a 2xx body
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) String() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
}

type apiErrorer interface {
	apiError() *APIError
}

// envelope is the {"data": [...]} wrapper shared by every endpoint.
type envelope[T any] struct {
	Data  []T       `json:"data"`
	Error *APIError `json:"error"`
}

func (e *envelope[T]) apiError() *APIError {
	return e.Error
}

// CountryEntry is one row of the countries endpoint
type CountryEntry struct {
	ISO2 string `json:"country_iso2"`
	Name string `json:"country_name"`
}

// AirportEntry is one row of the airports endpoint
type AirportEntry struct {
	IataCode    string `json:"iata_code"`
	AirportName string `json:"airport_name"`
}

// ScheduleEntry is one row of the schedules endpoint. Optional parts are
// pointers so a missing object can be told apart from an empty one.
type ScheduleEntry struct {
	FlightDate string      `json:"flight_date"`
	Flight     *FlightRef  `json:"flight,omitempty"`
	Airline    *AirlineRef `json:"airline,omitempty"`
	Departure  *Endpoint   `json:"departure,omitempty"`
	Arrival    *Endpoint   `json:"arrival,omitempty"`
	Price      *float64    `json:"price,omitempty"`
}

// FlightRef identifies a flight
type FlightRef struct {
	IATA string `json:"iata"`
}

// AirlineRef names the operating airline
type AirlineRef struct {
	Name string `json:"name"`
}

// Endpoint is one end of a flight leg
type Endpoint struct {
	IATA      string `json:"iata"`
	Scheduled string `json:"scheduled,omitempty"`
}
