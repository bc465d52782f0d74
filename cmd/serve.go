package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"flight-insights/internal/handlers"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const cacheReportInterval = 10 * time.Minute

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			d.cfg.Port = servePort
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		startBackgroundTasks(ctx, d)

		// Setup HTTP server
		gin.SetMode(ginMode(d.cfg.GinMode))
		r := gin.New()
		r.Use(gin.Recovery())
		r.Use(handlers.RequestID())
		r.Use(handlers.AccessLog())
		if err := handlers.LoadTemplates(r); err != nil {
			return fmt.Errorf("loading templates: %w", err)
		}

		handler := handlers.NewHandler(d.reference, d.insights, d.cfg.UseMock)
		handlers.SetupRoutes(r, handler)

		server := &http.Server{
			Addr:         fmt.Sprintf("0.0.0.0:%d", d.cfg.Port),
			Handler:      r,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("flight insights listening",
				slog.String("addr", server.Addr),
				slog.Bool("mock", d.cfg.UseMock),
			)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("starting server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		slog.Info("server exited")
		return nil
	},
}

// startBackgroundTasks preloads the country list and periodically reports
// the cache size until ctx is cancelled.
func startBackgroundTasks(ctx context.Context, d *deps) {
	if d.cfg.WarmCache {
		go func() {
			start := time.Now()
			countries := d.reference.Countries(ctx)
			slog.Info("country cache warmed",
				slog.Int("countries", len(countries)),
				slog.Duration("took", time.Since(start)),
			)
		}()
	}

	go func() {
		ticker := time.NewTicker(cacheReportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_, hasCountries := d.cache.Countries()
				slog.Debug("reference cache",
					slog.Bool("countries", hasCountries),
					slog.Int("airport_partitions", d.cache.CountAirportPartitions()),
				)
			}
		}
	}()
}

// ginMode maps unknown modes to release; gin.SetMode panics on them.
func ginMode(mode string) string {
	switch mode {
	case gin.DebugMode, gin.TestMode:
		return mode
	default:
		return gin.ReleaseMode
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 5000, "listen port (overrides env PORT)")
}
