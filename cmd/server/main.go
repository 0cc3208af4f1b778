package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/belledame/storefront/internal/catalog"
	httpDelivery "github.com/belledame/storefront/internal/catalog/delivery/http"
	"github.com/belledame/storefront/internal/catalog/domain"
	"github.com/belledame/storefront/internal/catalog/repository"
	"github.com/belledame/storefront/pkg/database"
	"github.com/belledame/storefront/pkg/logger"
	"github.com/belledame/storefront/pkg/tracing"
)

func main() {
	_ = godotenv.Load()

	serviceName := getEnv("OTEL_SERVICE_NAME", "catalog-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting catalog service")

	repo, err := buildRepository()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize product store")
	}

	if getEnv("TRACING_ENABLED", "false") == "true" {
		tp, err := tracing.InitTracer(serviceName)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
			}
		}()
		repo = repository.NewTracingRepository(repo)
		logger.Logger.Info().Msg("Tracing enabled")
	}

	handler, err := catalog.InitializeHTTPHandler(prometheus.DefaultRegisterer, repo)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	adminPIN := getEnv("ADMIN_PIN", "1234")
	httpPort := getEnv("PORT", "8080")
	go startHTTPServer(handler, adminPIN, httpPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func buildRepository() (domain.ProductRepository, error) {
	if getEnv("STORE_BACKEND", "json") == "postgres" {
		db, err := database.NewGormConnection(database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "catalogdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		})
		if err != nil {
			return nil, err
		}
		repo := repository.NewGormProductRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			return nil, err
		}
		logger.Logger.Info().Msg("Using PostgreSQL product store")
		return repo, nil
	}

	dbFile := filepath.Join(getEnv("DATA_DIR", "data"), "db.json")
	repo, err := repository.NewJSONFileRepository(dbFile)
	if err != nil {
		return nil, err
	}
	logger.Logger.Info().Str("db_file", dbFile).Msg("Using JSON file product store")
	return repo, nil
}

func startHTTPServer(handler *httpDelivery.CatalogHandler, adminPIN, port string) {
	router := mux.NewRouter()
	handler.RegisterRoutes(router, adminPIN)
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
