package main

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/meowtown/backend/internal/router"
	"github.com/meowtown/backend/pkg/config"
	"github.com/meowtown/backend/pkg/firebase"
	"github.com/meowtown/backend/pkg/logger"
	"github.com/meowtown/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()
	appLogger := logger.New(cfg.LogLevel, cfg.Env)
	log.Logger = appLogger

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize databases")
	}
	defer db.CloseDB()

	// Firebase is optional; without credentials the JWT middleware guards
	// the API instead.
	var authClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Firebase")
		}
		authClient = firebaseApp.AuthClient
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Setup global middleware
	router.SetupMiddleware(e, appLogger)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg.MongoDatabase, authClient)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
