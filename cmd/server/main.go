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
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/cache"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/clients/camerafeed"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/clients/googleroutes"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/config"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/handlers"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/routing"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/timeofday"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/lib/traffic"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/services"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/internal/store"
	"github.com/Omkar2k5/Dynamic-Traffic-Route-Optimization-sub000/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting traffic route server",
		zap.String("environment", cfg.Environment),
		zap.String("provider", cfg.Routes.Provider),
		zap.Int("monitoredCorridors", len(cfg.Routes.MonitoredCorridors)))

	source, cleanup, err := buildSnapshotSource(rootCtx, cfg)
	if err != nil {
		logger.Fatal("failed to build snapshot source", zap.Error(err))
	}
	defer cleanup()

	var feed *camerafeed.Client
	if cfg.Cameras.FeedURL != "" {
		feed = camerafeed.NewClient(cfg.Cameras.FeedURL)
		logger.Info("camera KML feed enabled", zap.String("url", cfg.Cameras.FeedURL))
	}

	cacheInstance := cache.New()
	cacheInstance.StartPeriodicCleanup(rootCtx, cfg.Cameras.StaleThreshold)

	cameraService := services.NewCameraService(source, feed, cacheInstance, cfg.Cameras.RefreshInterval)

	seed := cfg.Routes.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	estimator := routing.NewMockRouteEstimator(seed)

	var provider services.RouteProvider
	var legRouter routing.LegRouter
	if cfg.Routes.Provider == "google" {
		client := googleroutes.NewClient(cfg.Routes.GoogleAPIKey)
		provider = client
		legRouter = client
		logger.Info("using google routes provider")
	} else {
		logger.Info("using synthetic route estimates")
	}

	suggestionService := services.NewSuggestionService(
		traffic.NewCollector(cfg.Routes.ProximityThresholdKm),
		timeofday.NewEngine(),
		estimator,
		provider,
		legRouter,
		cfg.Routes.AverageSpeedKmh,
		cacheInstance,
		cfg.Cameras.RefreshInterval,
	)

	refresh := services.NewPeriodicRefreshService(cameraService, suggestionService, cfg.Routes.MonitoredCorridors, cfg.Cameras.RefreshInterval)
	refresh.Start(rootCtx)
	defer refresh.Stop()

	router := handlers.NewRouter(cfg, handlers.NewHandler(cameraService, suggestionService))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

// buildSnapshotSource selects the snapshot backend: the seeded static
// dataset, or MongoDB when configured.
func buildSnapshotSource(ctx context.Context, cfg *config.Config) (store.SnapshotSource, func(), error) {
	if cfg.Cameras.UseStaticData {
		logger.Info("using seeded static camera dataset")
		return store.NewStaticSource(), func() {}, nil
	}

	mongoSource, err := store.NewMongoSource(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("connected to mongodb", zap.String("database", cfg.Mongo.Database))

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoSource.Close(closeCtx); err != nil {
			logger.Warn("mongodb disconnect failed", zap.Error(err))
		}
	}
	return mongoSource, cleanup, nil
}
