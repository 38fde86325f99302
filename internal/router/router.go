package router

import (
	"fmt"
	"log"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/nanosocial/backend/internal/handlers"
	"github.com/nanosocial/backend/internal/middleware"
	"github.com/nanosocial/backend/internal/models"
	"github.com/nanosocial/backend/internal/repositories"
	"github.com/nanosocial/backend/pkg/config"
	"github.com/nanosocial/backend/pkg/metrics"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware and the error envelope
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = detailErrorHandler
	log.Println("Global middleware configured.")
}

// detailErrorHandler renders every error as the {"detail": "..."} envelope
// the API promises, including 401s raised by the auth middleware.
func detailErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		msg = fmt.Sprintf("%v", he.Message)
	}

	if jsonErr := c.JSON(code, echo.Map{"detail": msg}); jsonErr != nil {
		log.Printf("Error writing error response: %v", jsonErr)
	}
}

// SetupRoutes configures all application routes and injects dependencies.
// The post repository is built by the caller because the publishing sweeper
// shares it.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, postRepo repositories.PostRepository, firebaseAuthClient *auth.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Profile{},
		&models.Follow{},
		&models.UserReaction{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", metrics.Handler())

	// --- Initialize Repositories ---
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)

	// --- Protected routes (require bearer authentication) ---
	api := e.Group("/api/v1")
	if cfg.AuthProvider == "firebase" && firebaseAuthClient != nil {
		api.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient))
		log.Println("Firebase authentication middleware applied to /api/v1 group.")
	} else {
		api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
		log.Println("JWT authentication middleware applied to /api/v1 group.")
	}

	// Profile routes
	profileHandler := handlers.NewProfileHandler(profileRepo, cfg.UploadDir)
	profileHandler.RegisterProfileRoutes(api)
	log.Println("Profile routes configured.")

	// Follow graph routes
	followHandler := handlers.NewFollowHandler(followRepo, profileRepo, cfg.AllowSelfFollow)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, profileRepo, cfg.UploadDir)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Reaction routes
	reactionHandler := handlers.NewReactionHandler(reactionRepo, postRepo)
	reactionHandler.RegisterReactionRoutes(api)
	log.Println("Reaction routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	log.Println("All routes configured.")
}
