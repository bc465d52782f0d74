package services

import "flight-insights/internal/domain"

var india = domain.Country{Code: "IN", Name: "India"}

// fallbackCountries is served when the provider has no country list.
var fallbackCountries = []domain.Country{
	{Code: "AU", Name: "Australia"},
	{Code: "US", Name: "United States"},
	{Code: "GB", Name: "United Kingdom"},
	{Code: "DE", Name: "Germany"},
	{Code: "FR", Name: "France"},
	india,
	{Code: "SG", Name: "Singapore"},
	{Code: "CA", Name: "Canada"},
	{Code: "NZ", Name: "New Zealand"},
	{Code: "JP", Name: "Japan"},
	{Code: "CN", Name: "China"},
	{Code: "BR", Name: "Brazil"},
	{Code: "IT", Name: "Italy"},
	{Code: "ES", Name: "Spain"},
	{Code: "NL", Name: "Netherlands"},
}

// fallbackAirports take precedence over the provider for these countries.
var fallbackAirports = map[string][]domain.Airport{
	"AU": {
		{IataCode: "SYD", Name: "Sydney Kingsford Smith"},
		{IataCode: "MEL", Name: "Melbourne Tullamarine"},
		{IataCode: "BNE", Name: "Brisbane"},
		{IataCode: "PER", Name: "Perth"},
		{IataCode: "ADL", Name: "Adelaide"},
	},
	"NZ": {
		{IataCode: "AKL", Name: "Auckland"},
		{IataCode: "CHC", Name: "Christchurch"},
		{IataCode: "WLG", Name: "Wellington"},
	},
	"US": {
		{IataCode: "LAX", Name: "Los Angeles International"},
		{IataCode: "JFK", Name: "John F. Kennedy International"},
		{IataCode: "ORD", Name: "Chicago O'Hare"},
		{IataCode: "DFW", Name: "Dallas Fort Worth"},
		{IataCode: "ATL", Name: "Atlanta Hartsfield-Jackson"},
	},
	"GB": {
		{IataCode: "LHR", Name: "London Heathrow"},
		{IataCode: "LGW", Name: "London Gatwick"},
		{IataCode: "MAN", Name: "Manchester"},
	},
	"DE": {
		{IataCode: "FRA", Name: "Frankfurt"},
		{IataCode: "MUC", Name: "Munich"},
		{IataCode: "BER", Name: "Berlin Brandenburg"},
	},
	"FR": {
		{IataCode: "CDG", Name: "Paris Charles de Gaulle"},
		{IataCode: "ORY", Name: "Paris Orly"},
		{IataCode: "NCE", Name: "Nice"},
	},
	"IN": {
		{IataCode: "DEL", Name: "Delhi Indira Gandhi"},
		{IataCode: "BOM", Name: "Mumbai Chhatrapati Shivaji"},
		{IataCode: "BLR", Name: "Bangalore Kempegowda"},
		{IataCode: "MAA", Name: "Chennai International"},
		{IataCode: "CCU", Name: "Kolkata Netaji Subhas Chandra Bose"},
		{IataCode: "HYD", Name: "Hyderabad Rajiv Gandhi"},
	},
	"SG": {
		{IataCode: "SIN", Name: "Singapore Changi"},
	},
	"CA": {
		{IataCode: "YYZ", Name: "Toronto Pearson"},
		{IataCode: "YVR", Name: "Vancouver"},
		{IataCode: "YUL", Name: "Montreal"},
	},
}
