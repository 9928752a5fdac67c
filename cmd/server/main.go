package main

import (
	"alcyxob/coach-platform/internal/api"
	"alcyxob/coach-platform/internal/config"
	"alcyxob/coach-platform/internal/logging"
	"alcyxob/coach-platform/internal/repository"
	"alcyxob/coach-platform/internal/repository/memory"
	"alcyxob/coach-platform/internal/repository/mongo"
	"alcyxob/coach-platform/internal/service"
	"alcyxob/coach-platform/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// @title Coach Platform API
// @version 1.0
// @description API for coaches managing exercises, workouts, plans and athletes.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.Stdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Infof("starting coach platform server (storage: %s)", cfg.Storage.Driver)

	ctx := context.Background()

	// --- Repositories ---
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("could not open %s store: %s", cfg.Storage.Driver, err)
	}
	defer closeStore()

	// --- Object storage (optional) ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		if fileStorage, err = storage.NewS3Storage(ctx, cfg.S3); err != nil {
			log.Fatalf("failed to initialize S3 storage: %s", err)
		}
	} else {
		log.Warn("s3.bucket_name not set, image uploads are disabled")
	}

	// --- Services ---
	services := api.Services{
		Auth:       service.NewAuthService(store.Users, cfg.JWT.Secret, cfg.JWT.Expiration),
		Exercises:  service.NewExerciseService(store.Exercises),
		Workouts:   service.NewWorkoutService(store.Workouts, store.Exercises),
		Plans:      service.NewPlanService(store.Plans, store.Workouts, cfg.Drafts.CacheSizeMB, cfg.Drafts.TTL),
		Athletes:   service.NewAthleteService(store.Athletes),
		Assignment: service.NewAssignmentService(store.Assignments, store.Athletes, store.Plans, cfg.Assignment.SimulatedLatency),
		Chat:       service.NewChatService(store.Chat, store.Users),
		Feed:       service.NewFeedService(store.Posts, store.Users, fileStorage),
	}

	// --- Gin Engine ---
	if log.GetLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(api.RequestLogger(), gin.Recovery())
	api.SetupRoutes(router, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %s", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %s", err)
	}
	log.Info("server exiting")
}

// openStore builds the configured repositories and returns a func that
// releases them.
func openStore(ctx context.Context, cfg config.Config) (*repository.Store, func(), error) {
	if cfg.Storage.Driver != config.StorageDriverMongo {
		return memory.NewStore(), func() {}, nil
	}

	client, err := mongo.ConnectDB(ctx, cfg.Database.URI)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.Database.Name)

	indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	mongo.EnsureIndexes(indexCtx, db)
	log.Infof("connected to MongoDB database %s", cfg.Database.Name)

	return mongo.NewStore(db), func() {
		log.Info("disconnecting MongoDB...")
		if err := mongo.DisconnectDB(client); err != nil {
			log.Errorf("failed to disconnect MongoDB: %s", err)
		}
	}, nil
}
