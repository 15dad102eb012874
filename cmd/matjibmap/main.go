package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/gcbaptista/matjibmap/api"
	"github.com/gcbaptista/matjibmap/config"
	"github.com/gcbaptista/matjibmap/internal/fixtures"
	"github.com/gcbaptista/matjibmap/internal/jobs"
	"github.com/gcbaptista/matjibmap/internal/logging"
	"github.com/gcbaptista/matjibmap/internal/mapview"
	"github.com/gcbaptista/matjibmap/internal/recommend"
	"github.com/gcbaptista/matjibmap/internal/region"
	"github.com/gcbaptista/matjibmap/internal/session"
	"github.com/gcbaptista/matjibmap/store"
)

const version = "1.0.0"

func main() {
	// Define command-line flags
	var (
		help        = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		port        = flag.Int("port", 0, "Port to run the server on (overrides config)")
		configPath  = flag.String("config", "", "Path to a YAML config file")
	)

	flag.Parse()

	if *help {
		fmt.Printf("matjibmap - restaurant discovery API for the Naju innovation city\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                          # Start with config.yaml or built-in defaults\n", os.Args[0])
		fmt.Printf("  %s --port 9000              # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --config ./prod.yaml     # Use a specific config file\n", os.Args[0])
		fmt.Printf("\nEnvironment:\n")
		fmt.Printf("  NAVER_MAPS_CLIENT_ID        Map client id; without it the map reports itself unavailable\n")
		fmt.Printf("  MATJIB_*                    Override any config key, e.g. MATJIB_RECOMMEND_DELAY=2s\n")
		return
	}

	if *showVersion {
		fmt.Printf("matjibmap v%s\n", version)
		return
	}

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	if *port != 0 {
		cfg.Server.Port = *port
		if err := cfg.Validate(); err != nil {
			logging.Fatal().Err(err).Msg("invalid port")
		}
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if cfg.Map.ClientID == "" {
		logging.Warn().Msg("NAVER_MAPS_CLIENT_ID is not set; maps will be unavailable")
	}

	ds, err := fixtures.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load fixtures")
	}
	catalog := store.NewRestaurantStore(ds.Restaurants, ds.Profiles)
	logging.Info().Int("restaurants", catalog.Count()).Msg("fixtures loaded")

	jobManager := jobs.NewManager(cfg.Recommend.Workers, jobs.WithRetention(cfg.Session.JobRetention))
	jobManager.Start()

	recommender := recommend.NewService(jobManager, recommend.NewTemplateGenerator(), cfg.Recommend.Delay)

	clientID := cfg.Map.ClientID
	sessions := session.NewManager(catalog, recommender, func() mapview.Provider {
		return mapview.NewHeadlessProvider(clientID)
	}, session.Config{
		TTL:             cfg.Session.TTL,
		CleanupInterval: cfg.Session.CleanupInterval,
		MapOptions:      cfg.MapOptions(),
		StrictFilter:    cfg.Filter.StrictThresholds,
	})
	sessions.Start()

	if cfg.Logging.Level != "debug" && cfg.Logging.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	api.SetupRoutes(router, api.Dependencies{
		Catalog:  catalog,
		Home:     ds.Home,
		Sessions: sessions,
		Jobs:     jobManager,
		Regions:  region.Default(),
		Config:   cfg,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("server shutdown failed")
	}

	sessions.Stop()
	jobManager.Stop()
	logging.Info().Msg("server stopped")
}
