package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/meowtown/backend/internal/handlers"
	"github.com/meowtown/backend/internal/middleware"
	"github.com/meowtown/backend/internal/models"
	"github.com/meowtown/backend/internal/repositories"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger zerolog.Logger) {
	e.Use(middleware.RequestLogger(logger))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient may be nil; the JWT middleware then guards the API on
// its own.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, mongoDatabase string, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Cat{},
		&models.CatImage{},
		&models.CatCharacteristic{},
		&models.Sighting{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
		&models.SavedCat{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to auto migrate models")
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	catRepo := repositories.NewPostgresCatRepository(pgdb)
	sightingRepo := repositories.NewPostgresSightingRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	savedCatRepo := repositories.NewPostgresSavedCatRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(mongoDatabase))
	registry := repositories.NewTargetRegistry(pgdb, postRepo)

	// --- Protected routes ---
	api := e.Group("/api/v1")
	if firebaseAuthClient != nil {
		api.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient))
	} else {
		api.Use(middleware.JWTAuthMiddleware())
	}

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)

	catHandler := handlers.NewCatHandler(catRepo, likeRepo, commentRepo, userRepo, notificationRepo, registry)
	catHandler.RegisterCatRoutes(api)

	sightingHandler := handlers.NewSightingHandler(sightingRepo, catRepo, userRepo, notificationRepo)
	sightingHandler.RegisterSightingRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, likeRepo, commentRepo, userRepo, notificationRepo, registry)
	postHandler.RegisterPostRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, userRepo, notificationRepo, registry, catRepo, sightingRepo, postRepo)
	commentHandler.RegisterCommentRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	savedCatHandler := handlers.NewSavedCatHandler(savedCatRepo, userRepo, registry)
	savedCatHandler.RegisterSavedCatRoutes(api)

	log.Info().Msg("all routes configured")
}
