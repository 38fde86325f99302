package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/nanosocial/backend/internal/repositories"
	"github.com/nanosocial/backend/internal/router"
	"github.com/nanosocial/backend/internal/sweeper"
	"github.com/nanosocial/backend/pkg/config"
	"github.com/nanosocial/backend/pkg/firebase"
	"github.com/nanosocial/backend/pkg/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Firebase only when it is the configured identity validator
	var authClient *auth.Client
	if cfg.AuthProvider == "firebase" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		authClient = firebaseApp.AuthClient
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	postRepo := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase))
	router.SetupRoutes(e, db.Postgres, postRepo, authClient, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start the publishing sweeper
	go sweeper.New(postRepo, cfg.SweepInterval).Start(ctx)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
