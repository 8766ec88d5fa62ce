// Package main initializes and starts the kotodex HTTP server, setting up
// configuration, logging, the database connection, repositories, services
// and handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"github.com/atinyakov/kotodex/internal/config"
	"github.com/atinyakov/kotodex/internal/db"
	"github.com/atinyakov/kotodex/internal/logger"
	"github.com/atinyakov/kotodex/internal/repository"
	"github.com/atinyakov/kotodex/internal/server/handler/http"
	"github.com/atinyakov/kotodex/internal/service"
	"github.com/atinyakov/kotodex/internal/token"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port
	dbName := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.TokenSecret == "" {
		zapLogger.Fatal("token signing secret is not configured")
	}

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(dbName)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for users and vocabulary entries.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	kotoRepo := repository.NewPostgresKotoRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo)
	kotoService := service.NewKotoService(kotoRepo)

	// Session tokens: the signing secret is fixed for the process lifetime.
	tokens := token.NewService(options.TokenSecret)

	// Create HTTP handlers for account and koto endpoints.
	authHandler := &http.AuthHandler{AuthService: authService, Tokens: tokens}
	kotoHandler := &http.KotoHandler{KotoService: kotoService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, kotoHandler, tokens, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
