package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"galeana/configs"
	"galeana/internal/api"
	"galeana/internal/database"
	"galeana/internal/service"
	"galeana/internal/storage"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	sugar := logger.Sugar()
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Warnf("logger sync: %v", err)
		}
	}()

	envFile := configs.EnvFilePath()
	cfg, err := configs.Load(context.Background(), envFile)
	if err != nil {
		sugar.Fatalf("config load failed (settings file %s): %v", envFile, err)
	}

	handler, cleanup, err := bootstrap(cfg, sql.Open, database.DefaultFactory, sugar)
	if err != nil {
		sugar.Fatalf("bootstrap failed: %v", err)
	}
	defer cleanup()

	sigCtx, sigCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer sigCancel()

	if err := run(sigCtx, handler, sugar, cfg.HTTPAddr); err != nil {
		sugar.Fatalf("server failed: %v", err)
	}
}

func run(ctx context.Context, srv http.Handler, logger *zap.SugaredLogger, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Infof("server listening on %s", server.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down...")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("graceful shutdown failed: %v", err)
			return err
		}
		<-errCh
		logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	}
}

// bootstrap builds the client handle once and passes it down. The direct
// database connection is only opened when SUPABASE_DB_URL is set.
func bootstrap(
	cfg *configs.Config,
	openDB func(driverName, dsn string) (*sql.DB, error),
	factory database.Factory,
	logger *zap.SugaredLogger,
) (http.Handler, func(), error) {
	connector := database.NewConnector(factory, logger, database.WithHeaders(map[string]string{
		"X-Client-Info": "galeana-backend",
	}))
	client, err := connector.ConnectConfig(cfg)
	if err != nil {
		return nil, func() {}, err
	}

	var pinger service.Pinger
	cleanup := func() {}
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		store, err := storage.Open(ctx, openDB, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, func() {}, err
		}
		pinger = store
		cleanup = func() {
			_ = store.Close()
		}
	} else {
		logger.Info("SUPABASE_DB_URL not set, direct database checks disabled")
	}

	svc := service.New(client, pinger)
	handler := api.NewServer(svc, logger).Routes()
	return handler, cleanup, nil
}
