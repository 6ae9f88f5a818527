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

	"github.com/gdg-garage/school-activities-api/internal/config"
	"github.com/gdg-garage/school-activities-api/internal/database"
	"github.com/gdg-garage/school-activities-api/internal/handlers"
	"github.com/gdg-garage/school-activities-api/internal/notifier"
	"github.com/gdg-garage/school-activities-api/internal/seed"
	"github.com/gdg-garage/school-activities-api/internal/store"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if cfg.SeedOnStartup {
		if _, err := seed.Run(context.Background(), db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize Handlers
	discordNotifier, err := notifier.FromConfig(cfg)
	if err != nil {
		log.Printf("Discord notifier not initialized: %v", err)
	}

	activityHandler := handlers.NewActivityHandler(store.New(db), discordNotifier)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, handlers.RouteOptions{
		StaticDir:      cfg.StaticDir,
		RequestTimeout: cfg.RequestTimeout,
		EnableMetrics:  cfg.EnableMetrics,
	}, activityHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	// Start Server
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-shutdownCh
	log.Printf("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	activityHandler.Wait()
}
