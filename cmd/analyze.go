package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"flight-insights/internal/render"
	"flight-insights/internal/services"

	"github.com/spf13/cobra"
)

var (
	outputFormat string
	analyzeDate  string
)

// ─── analyze ──────────────────────────────────────────────────────────────────

var analyzeCmd = &cobra.Command{
	Use:   "analyze ORIGIN DESTINATION",
	Short: "Price insights for a route around a departure date",
	Example: `  flight-insights analyze SYD MEL
  flight-insights analyze LHR JFK --date 2024-06-01 --format json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !render.ValidFormat(outputFormat) {
			return fmt.Errorf("unknown --format %q: expected table or json", outputFormat)
		}
		d, err := setup(cmd)
		if err != nil {
			return err
		}

		origin := strings.ToUpper(strings.TrimSpace(args[0]))
		destination := strings.ToUpper(strings.TrimSpace(args[1]))
		date := analyzeDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		res, err := d.insights.Analyze(cmd.Context(), origin, destination, date, d.cfg.UseMock)
		if errors.Is(err, services.ErrNoFlightData) {
			return fmt.Errorf("%s to %s around %s: %w", origin, destination, date, err)
		}
		if err != nil {
			return err
		}
		return render.Insights(cmd.OutOrStdout(), res, outputFormat)
	},
}

// ─── countries ────────────────────────────────────────────────────────────────

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List selectable countries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !render.ValidFormat(outputFormat) {
			return fmt.Errorf("unknown --format %q: expected table or json", outputFormat)
		}
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		return render.Countries(cmd.OutOrStdout(), d.reference.Countries(cmd.Context()), outputFormat)
	},
}

// ─── airports ─────────────────────────────────────────────────────────────────

var airportsCmd = &cobra.Command{
	Use:     "airports COUNTRY_CODE",
	Short:   "List the airports of a country",
	Example: `  flight-insights airports NZ`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !render.ValidFormat(outputFormat) {
			return fmt.Errorf("unknown --format %q: expected table or json", outputFormat)
		}
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		return render.Airports(cmd.OutOrStdout(), d.reference.Airports(cmd.Context(), args[0]), outputFormat)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "departure date YYYY-MM-DD (default: today)")
	for _, c := range []*cobra.Command{analyzeCmd, countriesCmd, airportsCmd} {
		c.Flags().StringVar(&outputFormat, "format", render.FormatTable, "output format: table|json")
	}
}
