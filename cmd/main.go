// Main entry point for the flight insights service and CLI
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"flight-insights/internal/clients"
	"flight-insights/internal/config"
	"flight-insights/internal/repo"
	"flight-insights/internal/services"

	"github.com/spf13/cobra"
)

// logOutput receives structured logs
var logOutput io.Writer = os.Stderr

// globalFlags holds the parsed values of all persistent flags
var globalFlags struct {
	APIKey   string
	BaseURL  string
	Timeout  string
	Mock     bool
	LogLevel string
}

var rootCmd = &cobra.Command{
	Use:   "flight-insights",
	Short: "Flight price insights around a departure date",
	Long: `flight-insights looks up flights on a route for the five days either side
of a departure date and reports the average price, a per-day price trend,
the busiest routes and a sample of flights.

Without an API key, or with --mock, flight data is synthesized.

Quick start:
  flight-insights serve                         # web UI on :5000
  flight-insights analyze SYD MEL --date 2024-06-01
  flight-insights airports AU`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// deps is the dependency container shared by every command
type deps struct {
	cfg       *config.AppConfig
	reference *services.ReferenceService
	insights  *services.InsightService
	cache     *repo.CacheRepo
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves the environment and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	cfg := config.LoadConfig()

	if globalFlags.APIKey != "" {
		cfg.APIKey = globalFlags.APIKey
	}
	if globalFlags.BaseURL != "" {
		cfg.BaseURL = globalFlags.BaseURL
	}
	if globalFlags.LogLevel != "" {
		cfg.LogLevel = globalFlags.LogLevel
	}
	if globalFlags.Timeout != "" {
		d, err := time.ParseDuration(globalFlags.Timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid --timeout %q: expected a positive duration such as 10s", globalFlags.Timeout)
		}
		cfg.Upstream.Timeout = d
	}
	if cmd.Flags().Changed("mock") {
		cfg.UseMock = globalFlags.Mock
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	if cfg.EnvFileErr != nil {
		slog.Warn("could not read .env file", slog.String("err", cfg.EnvFileErr.Error()))
	}
	return cfg, nil
}

// buildDeps wires clients, cache and services from cfg
func buildDeps(cfg *config.AppConfig) *deps {
	httpClient := clients.NewHTTPClient(cfg.Upstream.Timeout, cfg.Upstream.RatePerSec)
	aviation := clients.NewAviationClient(httpClient, cfg.BaseURL, cfg.APIKey)

	cache := repo.NewCacheRepo()
	flights := services.NewFlightSource(aviation, services.NewMockGenerator())

	return &deps{
		cfg:       cfg,
		cache:     cache,
		reference: services.NewReferenceService(cache, aviation),
		insights:  services.NewInsightService(flights),
	}
}

func setup(cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return buildDeps(cfg), nil
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&globalFlags.APIKey, "api-key", "",
		"flight data API key (overrides env API_KEY)")
	pf.StringVar(&globalFlags.BaseURL, "base-url", "",
		"flight data API base URL (overrides env AVIATION_BASE_URL)")
	pf.StringVar(&globalFlags.Timeout, "timeout", "",
		"upstream request timeout (e.g. 10s)")
	pf.BoolVar(&globalFlags.Mock, "mock", true,
		"synthesize flight data instead of calling the provider (overrides env USE_MOCK)")
	pf.StringVar(&globalFlags.LogLevel, "log-level", "",
		"log level: debug|info|warn|error (overrides env LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd, analyzeCmd, countriesCmd, airportsCmd)
}
