package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httptransport "github.com/altel/telebill/internal/api/http"
	"github.com/altel/telebill/internal/api/middleware"
	authapp "github.com/altel/telebill/internal/auth/app"
	authpg "github.com/altel/telebill/internal/auth/repository/postgres"
	authredis "github.com/altel/telebill/internal/auth/repository/redis"
	billingapp "github.com/altel/telebill/internal/billing/app"
	billingpg "github.com/altel/telebill/internal/billing/repository/postgres"
	"github.com/altel/telebill/internal/platform/cache"
	"github.com/altel/telebill/internal/platform/config"
	"github.com/altel/telebill/internal/platform/database"
	"github.com/altel/telebill/internal/platform/logger"
)

const serviceName = "billing_api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel)
	appLogger.Info("Billing API starting...", "port", cfg.ServerPort)

	dbPool, err := database.NewDBPool(context.Background(), cfg.PostgresDSN)
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	appLogger.Info("Connected to PostgreSQL database")

	redisClient, err := cache.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		appLogger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis")

	// Repositories
	countryRepo := billingpg.NewPgCountryRepository(dbPool)
	cityRepo := billingpg.NewPgCityRepository(dbPool)
	rateRepo := billingpg.NewPgRateRepository(dbPool)
	categoryRepo := billingpg.NewPgCategoryRepository(dbPool)
	customerRepo := billingpg.NewPgCustomerRepository(dbPool)
	phoneRepo := billingpg.NewPgPhoneNumberRepository(dbPool)
	callRepo := billingpg.NewPgCallRepository(dbPool)
	paymentRepo := billingpg.NewPgPaymentRepository(dbPool)
	analyticsRepo := billingpg.NewPgAnalyticsRepository(dbPool)
	adminRepo := authpg.NewPgAdminRepository(dbPool)
	tokenStore := authredis.NewRedisTokenStore(redisClient)

	// Services
	authService := authapp.NewAuthService(adminRepo, tokenStore, authapp.AuthConfig{
		SecretKey:      cfg.SecretKey,
		AccessTokenTTL: time.Duration(cfg.AccessTokenTTLSeconds) * time.Second,
	}, appLogger)
	catalogService := billingapp.NewCatalogService(countryRepo, cityRepo, rateRepo, categoryRepo, appLogger)
	customerService := billingapp.NewCustomerService(
		dbPool, customerRepo, phoneRepo, paymentRepo, cityRepo, categoryRepo,
		int64(cfg.MaxPhoneNumbers), appLogger,
	)
	callService := billingapp.NewCallService(dbPool, callRepo, phoneRepo, appLogger)
	analyticsService := billingapp.NewAnalyticsService(analyticsRepo, customerRepo, appLogger)

	// Handlers
	validate := validator.New()
	authHandler := httptransport.NewAuthHandler(authService, appLogger, validate)
	countryHandler := httptransport.NewCountryHandler(catalogService, appLogger, validate)
	cityHandler := httptransport.NewCityHandler(catalogService, analyticsService, appLogger, validate)
	rateHandler := httptransport.NewRateHandler(catalogService, appLogger, validate)
	categoryHandler := httptransport.NewCategoryHandler(catalogService, appLogger, validate)
	customerHandler := httptransport.NewCustomerHandler(customerService, analyticsService, appLogger, validate)
	phoneHandler := httptransport.NewPhoneNumberHandler(customerService, appLogger, validate)
	paymentHandler := httptransport.NewPaymentHandler(customerService, appLogger)
	callHandler := httptransport.NewCallHandler(callService, appLogger, validate)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(httptransport.PrometheusMetricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "Billing API is healthy"})
	})
	r.Handle("/metrics", promhttp.Handler())

	authHandler.RegisterRoutes(r)

	// Call lifecycle endpoints are driven by the switch integration and carry
	// no admin token.
	callHandler.RegisterRoutes(r)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.AuthMiddleware(authService, appLogger))
		countryHandler.RegisterRoutes(protected)
		cityHandler.RegisterRoutes(protected)
		rateHandler.RegisterRoutes(protected)
		categoryHandler.RegisterRoutes(protected)
		customerHandler.RegisterRoutes(protected)
		phoneHandler.RegisterRoutes(protected)
		paymentHandler.RegisterRoutes(protected)
	})

	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.ServerPort), Handler: r}
	appLogger.Info(fmt.Sprintf("Billing API server listening on port %d", cfg.ServerPort))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed to serve", "error", err)
		}
	}()

	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)
	<-quitChan
	appLogger.Info("Shutdown signal received, shutting down HTTP server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		appLogger.Error("HTTP server shutdown failed", "error", err)
	} else {
		appLogger.Info("HTTP server shut down gracefully.")
	}
	appLogger.Info("Billing API shut down.")
}
