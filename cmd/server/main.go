package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mechbano/site-api/internal/config"
	api "github.com/mechbano/site-api/internal/http"
	"github.com/mechbano/site-api/internal/log"
	"github.com/mechbano/site-api/internal/metrics"
	"github.com/mechbano/site-api/internal/repo"
	"github.com/mechbano/site-api/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("config: %v", err)
	}

	logger, err := log.Init(cfg.Production())
	if err != nil {
		stdlog.Fatalf("log init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	metrics.MustRegister()

	// the store connects lazily; an unreachable database only fails requests,
	// not startup
	store, err := repo.NewStore(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		stdlog.Fatalf("store: %v", err)
	}
	defer store.Close(context.Background())

	var assets api.AssetRemover
	if d := storage.NewDeleter(cfg.SupabaseURL, cfg.SupabaseKey); d != nil {
		assets = d
	} else {
		logger.Warn("object storage credentials missing, asset cleanup disabled")
	}

	h := api.NewHandler(store, assets, cfg.APIKey, cfg.Production())
	r := api.NewRouter(h, cfg.AllowedOrigins)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	logger.Info("site-api listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}
}
