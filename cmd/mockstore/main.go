// mockstore serves a JSON file as a REST collection store for local
// development of the parking client.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking_app/internal/api"
	"parking_app/internal/config"
	"parking_app/internal/logger"
	"parking_app/internal/repository/jsonfile"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flagSet := pflag.NewFlagSet("mockstore", pflag.ContinueOnError)
	port := flagSet.String("port", cfg.MockStorePort, "port to listen on")
	dbPath := flagSet.String("db", cfg.MockStoreDB, "JSON database file (created with seed data if missing)")
	noSeed := flagSet.Bool("no-seed", false, "create an empty database instead of the seed data")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	log, err := logger.New(cfg.Env, "info")
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var store *jsonfile.Store
	if *noSeed {
		store, err = jsonfile.Open(*dbPath)
	} else {
		store, err = jsonfile.OpenOrSeed(*dbPath)
	}
	if err != nil {
		return fmt.Errorf("open database %s: %w", *dbPath, err)
	}
	log.Info("database loaded", zap.String("path", *dbPath), zap.Strings("collections", store.Collections()))

	router := api.SetupRouter(store, log)
	srv := &http.Server{
		Addr:    ":" + *port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("mock store listening", zap.String("port", *port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-quit:
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
