// Command stubstore serves the payment-method store API from memory for local
// development and demos.
package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kevin07696/card-wallet/internal/adapters/memstore"
	"github.com/kevin07696/card-wallet/internal/config"
	"github.com/kevin07696/card-wallet/internal/handlers/storeapi"
	"github.com/kevin07696/card-wallet/pkg/logging"
	"github.com/kevin07696/card-wallet/pkg/middleware"
	"github.com/kevin07696/card-wallet/pkg/observability"
	"github.com/kevin07696/card-wallet/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logging.New(cfg.Environment, cfg.Logger.Level)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	var opts []memstore.Option
	if cfg.StubStore.Seed {
		opts = append(opts, memstore.WithSeed(memstore.DemoSeed()...))
	}
	store := memstore.New(logger, opts...)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(observability.HTTPMetrics)
	storeapi.NewHandler(store, logger).AppendRoutes(r)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.StubStore.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Stub store listening",
			zap.String("addr", server.Addr),
			zap.Bool("seeded", cfg.StubStore.Seed),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Stub store failed", zap.Error(err))
		}
	}()

	shutdownManager := shutdown.NewManager(logger, 5*time.Second)
	shutdownManager.RegisterHTTPServer("stubstore-server", server)
	if err := shutdownManager.WaitForShutdown(context.Background()); err != nil {
		logger.Error("Shutdown finished with errors", zap.Error(err))
	}
}
