package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spencer-p/fishdash/pkg/config"
	"github.com/spencer-p/fishdash/pkg/handlers"
	"github.com/spencer-p/fishdash/pkg/locate"
	"github.com/spencer-p/fishdash/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	zone, err := cfg.Zone()
	if err != nil {
		return err
	}
	fixed, err := config.LoadLocations(cfg.LocationsFile)
	if err != nil {
		return err
	}
	if len(fixed) == 0 {
		logger.Warn("no fixed locations loaded", "file", cfg.LocationsFile)
	}

	agg, geocoder, err := cfg.NewAggregator(logger, metrics.Recorder{})
	if err != nil {
		return err
	}

	if cfg.SessionKey == "" || cfg.EncryptionKey == "" {
		logger.Warn("SESSION_KEY or ENCRYPTION_KEY unset, using development keys")
	}

	r := mux.NewRouter().StrictSlash(true)
	r.Use(metrics.LatencyHandler)
	r.NotFoundHandler = metrics.LatencyHandler(http.NotFoundHandler())
	r.MethodNotAllowedHandler = metrics.LatencyHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}))
	r.Handle("/metrics", promhttp.Handler())
	s := r.PathPrefix(cfg.Prefix).Subrouter()
	handlers.Register(s, cfg.Prefix, handlers.Config{
		Aggregator:      agg,
		Resolver:        locate.NewResolver(fixed, geocoder, cfg.SearchLimit, logger),
		DefaultLocation: cfg.DefaultLocation,
		ForecastLimit:   cfg.ForecastLimit,
		Location:        zone,
		SessionKey:      cfg.SessionKey,
		EncryptionKey:   cfg.EncryptionKey,
		Logger:          logger,
	})

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + cfg.Port,
		WriteTimeout: 2 * cfg.HTTPTimeout,
		ReadTimeout:  15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("listening", "addr", srv.Addr, "prefix", strings.TrimPrefix(cfg.Prefix, "/"), "tides", cfg.TideProvider)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
