/*
main.go - Application entry point

PURPOSE:
  Starts the time-off tracker API. Loads configuration, sets up logging,
  picks a ledger store and serves the JSON API until interrupted.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load configuration (defaults -> YAML file -> TIMEOFF_* env)
  3. Configure logging
  4. Initialize the store (memory or in-memory SQLite)
  5. Create repository, handler and router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  YAML config path (default: timeoff.yaml, optional)
  -port    Overrides server.port when set

ENVIRONMENT:
  LOG_LEVEL                 Overrides log.level
  TIMEOFF_SERVER_PORT       HTTP port
  TIMEOFF_LEDGER_HOURSPERDAY Length of a workday in hours
  TIMEOFF_STORE_BACKEND     memory | sqlite

  All data lives in memory and is lost when the process exits.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/warp/timeoff-tracker/api"
	"github.com/warp/timeoff-tracker/config"
	"github.com/warp/timeoff-tracker/store/memory"
	"github.com/warp/timeoff-tracker/store/sqlite"
	"github.com/warp/timeoff-tracker/timeoff"
)

func main() {
	// Flags
	configPath := flag.String("config", "timeoff.yaml", "YAML config file path")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	configureLogging(cfg.Log.Level)

	// Initialize store
	store, closer, err := openStore(cfg.Store.Backend)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer closer.Close()

	repo := timeoff.NewRepository(store, cfg.Settings())
	router := api.NewRouter(api.NewHandler(repo), cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{
			"port":          cfg.Server.Port,
			"backend":       cfg.Store.Backend,
			"hours_per_day": cfg.Ledger.HoursPerDay,
		}).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}

func configureLogging(level string) {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(lvl)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openStore(backend string) (timeoff.Store, io.Closer, error) {
	switch backend {
	case config.BackendSQLite:
		s, err := sqlite.New()
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return memory.New(), nopCloser{}, nil
	}
}
