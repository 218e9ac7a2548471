package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"parking-vacancy-backend/internal/api"
	"parking-vacancy-backend/internal/db"
	"parking-vacancy-backend/internal/poller"
	"parking-vacancy-backend/internal/query"
	"parking-vacancy-backend/internal/ref"
	"parking-vacancy-backend/internal/source"
	"parking-vacancy-backend/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the poller and the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	appStore := store.NewGormStore(gormDB)
	log.Println("data store initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reference data is loaded once; it is read-only from here on.
	garages, err := appStore.LoadGarages(ctx)
	if err != nil {
		return fmt.Errorf("failed to load garage reference data: %w", err)
	}
	if len(garages) == 0 {
		log.Println("Warning: garage reference table is empty; run `parkingd seed` to populate it")
	}
	registry := ref.NewRegistry(garages)

	httpClient := &http.Client{Timeout: cfg.Poller.FetchTimeout}
	tableAdapter := source.NewTableAdapter(cfg.Sources.Table, httpClient)
	feedAdapter, err := source.NewFeedAdapter(cfg.Sources.Feed, registry, cfg.Sources.Timezone, httpClient)
	if err != nil {
		return fmt.Errorf("failed to initialize feed adapter: %w", err)
	}

	pollerSvc := poller.NewService(cfg, appStore, []source.Adapter{tableAdapter, feedAdapter})
	go pollerSvc.Run(ctx)

	facade := query.NewFacade(registry, appStore)
	router := api.NewRouter(&cfg.Server, facade)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	log.Println("Shutdown signal received, stopping services...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}

	log.Println("Server gracefully stopped")
	return nil
}
