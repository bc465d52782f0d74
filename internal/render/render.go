// Package render writes insights and reference lists to a terminal, either
// as tables or as indented JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"flight-insights/internal/domain"

	"github.com/olekukonko/tablewriter"
)

// Format constants matching --format flag values.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ValidFormat reports whether f is a supported output format
func ValidFormat(f string) bool {
	return f == FormatTable || f == FormatJSON
}

// Insights writes an analyze result
func Insights(w io.Writer, res *domain.InsightResult, format string) error {
	if format == FormatJSON {
		return renderJSON(w, res)
	}

	first, last := "", ""
	if n := len(res.DateRange); n > 0 {
		first, last = res.DateRange[0], res.DateRange[n-1]
	}
	fmt.Fprintf(w, "Selected date: %s (window %s to %s)\n", res.SelectedDate, first, last)
	fmt.Fprintf(w, "Average price: $%.2f\n\n", res.AvgPrice)

	fmt.Fprintln(w, "Price trends")
	simpleTable(w, []string{"Date", "Mean price"}, func(add func(...string)) {
		for _, p := range res.PriceTrends {
			add(p.DepartDate, strconv.FormatFloat(p.MeanPrice, 'f', 2, 64))
		}
	})

	fmt.Fprintln(w, "\nPopular routes")
	simpleTable(w, []string{"Origin", "Destination", "Flights"}, func(add func(...string)) {
		for _, r := range res.PopularRoutes {
			add(r.Origin, r.Destination, strconv.Itoa(r.Count))
		}
	})

	fmt.Fprintln(w, "\nFlights")
	simpleTable(w, []string{"Flight", "Airline", "Route", "Date", "Time", "Price"}, func(add func(...string)) {
		for _, f := range res.Flights {
			add(f.FlightNumber, f.Airline, f.Origin+"-"+f.Destination, f.DepartDate, f.DepartTime, "$"+strconv.Itoa(f.Price))
		}
	})
	return nil
}

// Countries writes the selectable country list
func Countries(w io.Writer, countries []domain.Country, format string) error {
	if format == FormatJSON {
		return renderJSON(w, countries)
	}
	simpleTable(w, []string{"Code", "Name"}, func(add func(...string)) {
		for _, c := range countries {
			add(c.Code, c.Name)
		}
	})
	return nil
}

// Airports writes the airports of one country
func Airports(w io.Writer, airports []domain.Airport, format string) error {
	if format == FormatJSON {
		return renderJSON(w, airports)
	}
	simpleTable(w, []string{"IATA", "Name"}, func(add func(...string)) {
		for _, a := range airports {
			add(a.IataCode, a.Name)
		}
	})
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func simpleTable(w io.Writer, headers []string, fill func(add func(...string))) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(headers)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)

	fill(func(cols ...string) {
		tw.Append(cols)
	})
	tw.Render()
}
