package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auction "crop-auction/internal/auctionService"
	"crop-auction/internal/config"
	"crop-auction/internal/identity"
	"crop-auction/internal/metrics"
	"crop-auction/internal/repository"
	"crop-auction/internal/server"
	"crop-auction/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLogLevel(cfg.LogLevel); err != nil {
		utils.Warn("unknown LOG_LEVEL, keeping info", map[string]any{"level": cfg.LogLevel})
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := openStore(cfg)
	if err != nil {
		utils.Fatal("failed to open listing store", map[string]any{"driver": cfg.StoreDriver, "error": err.Error()})
	}

	rdb, err := identity.Connect(cfg.RedisURL)
	if err != nil {
		utils.Fatal("failed to configure session store", map[string]any{"error": err.Error()})
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		utils.Warn("session store unreachable, authenticated requests will fail until it recovers", map[string]any{"error": err.Error()})
	}
	cancel()

	m := metrics.New()
	ledger := auction.NewLedger(repo, auction.WithMetrics(m))
	router := server.SetupRouter(ledger, identity.NewRedisSessionProvider(rdb, cfg.SessionPrefix), repo, m)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Info("starting auction server", map[string]any{"addr": cfg.Addr(), "store": cfg.StoreDriver, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	utils.Info("shutting down", map[string]any{"timeout": cfg.ShutdownTimeout.String()})
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Error("server shutdown failed", map[string]any{"error": err.Error()})
	}
	if err := repo.Close(); err != nil {
		utils.Error("failed to close listing store", map[string]any{"error": err.Error()})
	}
	if err := rdb.Close(); err != nil {
		utils.Error("failed to close session store", map[string]any{"error": err.Error()})
	}
	utils.Info("server stopped", nil)
}

// openStore opens the listing store selected by STORE_DRIVER
func openStore(cfg *config.Config) (repository.AuctionDB, error) {
	if cfg.StoreDriver == config.StoreMemory {
		utils.Warn("using in-memory store, listings are lost on restart", nil)
		return repository.NewMemoryRepo(), nil
	}

	driver, dsn := repository.DriverSQLite, cfg.SQLitePath
	if cfg.StoreDriver == config.StorePostgres {
		driver, dsn = repository.DriverPostgres, cfg.DatabaseURL
	}
	db, err := repository.OpenDatabase(driver, dsn)
	if err != nil {
		return nil, err
	}
	repo, err := repository.NewGormRepo(db)
	if err != nil {
		return nil, err
	}
	return repo, nil
}
