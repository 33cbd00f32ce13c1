package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kevin07696/card-wallet/internal/adapters/paystore"
	"github.com/kevin07696/card-wallet/internal/config"
	paymentmethodHandler "github.com/kevin07696/card-wallet/internal/handlers/payment_method"
	securitymw "github.com/kevin07696/card-wallet/internal/middleware"
	"github.com/kevin07696/card-wallet/internal/services/cardform"
	paymentmethodService "github.com/kevin07696/card-wallet/internal/services/payment_method"
	"github.com/kevin07696/card-wallet/internal/validation"
	pkghttp "github.com/kevin07696/card-wallet/pkg/http"
	"github.com/kevin07696/card-wallet/pkg/logging"
	"github.com/kevin07696/card-wallet/pkg/middleware"
	"github.com/kevin07696/card-wallet/pkg/observability"
	"github.com/kevin07696/card-wallet/pkg/resilience"
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

	logger.Info("Starting card wallet console",
		zap.String("environment", cfg.Environment),
		zap.String("store_url", cfg.Store.BaseURL),
	)

	timeouts := resilience.DefaultTimeoutConfig()
	timeouts.StoreRequest = cfg.Store.Timeout

	// Store client
	httpClient := pkghttp.NewHTTPClient(pkghttp.StoreClientConfig(cfg.Store.Timeout), 0)
	store := paystore.NewClient(&paystore.Config{
		BaseURL: cfg.Store.BaseURL,
		Timeout: timeouts.StoreRequest,
	}, httpClient, logging.NewZapLogger(logger))

	// Controllers
	methods := paymentmethodService.NewPaymentMethodService(store, logger)
	form := cardform.New(validation.NewDefault(), methods.SubmitNew, logger)

	// Middleware
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger)
	fieldLimiter := middleware.NewRateLimiter(cfg.RateLimit.FieldRequestsPerSecond, cfg.RateLimit.FieldBurst, logger)
	inflight := shutdown.NewInFlightTracker("console", logger)
	securityHeaders := securitymw.NewSecurityHeaders(cfg.IsDevelopment())

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(observability.HTTPMetrics)
	r.Use(securityHeaders.Middleware)
	r.Use(middleware.Timeout(timeouts))
	r.Use(inflight.Middleware)
	r.Use(middleware.Gzip)

	paymentmethodHandler.NewHandler(methods, form, logger).AppendRoutes(r, rateLimiter.Middleware, fieldLimiter.Middleware)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      timeouts.HTTPHandler + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Health and metrics
	healthChecker := observability.NewHealthChecker(timeouts.HealthProbe)
	healthChecker.Register("paystore", store.Ping)
	metricsServer := observability.StartMetricsServer(strconv.Itoa(cfg.Server.MetricsPort), healthChecker, logger)

	go func() {
		logger.Info("Console listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Console server failed", zap.Error(err))
		}
	}()

	// Stopped last registered first: listeners, then in-flight work, then the
	// client and background loops.
	shutdownManager := shutdown.NewManager(logger, cfg.Server.ShutdownTimeout)
	shutdownManager.RegisterNoErr("store-http-client", httpClient.CloseIdleConnections)
	shutdownManager.RegisterNoErr("rate-limiter", rateLimiter.Shutdown)
	shutdownManager.RegisterNoErr("field-rate-limiter", fieldLimiter.Shutdown)
	shutdownManager.Register("console-inflight", inflight.Shutdown)
	shutdownManager.RegisterHTTPServer("console-server", server)
	shutdownManager.RegisterHTTPServer("metrics-server", metricsServer)

	if err := shutdownManager.WaitForShutdown(context.Background()); err != nil {
		logger.Error("Shutdown finished with errors", zap.Error(err))
	}
}
