package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"dancerfit/admin-dashboard/internal/adminapi"
	"dancerfit/admin-dashboard/internal/api"
	"dancerfit/admin-dashboard/internal/config"
	"dancerfit/admin-dashboard/internal/logger"
	"dancerfit/admin-dashboard/internal/media"
	"dancerfit/admin-dashboard/internal/repository/mongo"
	"dancerfit/admin-dashboard/internal/service"
	"dancerfit/admin-dashboard/internal/storage"
	"dancerfit/admin-dashboard/internal/submission"
)

// @title Dancer Fitness Admin Dashboard API
// @version 1.0
// @description Backend for the admin dashboard that curates exercises and training plans.
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
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("FATAL: Invalid config: %v", err)
	}

	appLog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer appLog.Sync()
	appLog.Info("starting admin dashboard server", "address", cfg.Server.Address, "remote_api", cfg.RemoteAPI.BaseURL)

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(context.Background(), mongo.ConnectOptions{
		URI:     cfg.Database.URI,
		Timeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		appLog.Fatal("could not connect to MongoDB", "error", err)
	}
	defer func() {
		appLog.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			appLog.Error("failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), time.Minute)
	if err := mongo.EnsureSessionIndexes(indexCtx, appDB.Collection(mongo.SessionCollectionName)); err != nil {
		appLog.Warn("could not ensure session indexes", "error", err)
	}
	cancelIndex()

	// --- Media ---
	mediaURLs, err := storage.New(cfg.S3, appLog)
	if err != nil {
		appLog.Fatal("failed to initialize media storage", "error", err)
	}
	prober := media.NewDispatch(cfg.Media.FFProbePath)

	// --- Remote API ---
	dialect, err := adminapi.ParseDialect(cfg.RemoteAPI.TypeDialect)
	if err != nil {
		appLog.Fatal("invalid remote_api.type_dialect", "error", err)
	}
	remote, err := adminapi.New(adminapi.Options{
		BaseURL: cfg.RemoteAPI.BaseURL,
		Timeout: cfg.RemoteAPI.Timeout,
		Dialect: dialect,
		Logger:  appLog.With("component", "adminapi"),
	})
	if err != nil {
		appLog.Fatal("invalid remote API client", "error", err)
	}

	// --- Services ---
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	authService := service.NewAuthService(remote, sessionRepo, cfg.JWT.Secret, cfg.JWT.Expiration, appLog)

	schema := submission.NewSchema(submission.SchemaOptions{
		PlanExerciseTypeRequired: cfg.Submission.PlanExerciseTypeRequired,
	})
	workspaces := service.NewWorkspaces(func(sessionID string) service.RemoteAPI {
		return remote.WithCredentials(authService.Credentials(sessionID))
	}, submission.NewBuilder(schema), appLog)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go workspaces.RunSweeper(sweepCtx, 5*time.Minute, cfg.JWT.Expiration)

	// --- Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	router.MaxMultipartMemory = 32 << 20

	api.SetupRoutes(router, api.Deps{
		AuthService:    authService,
		Workspaces:     workspaces,
		MediaURLs:      mediaURLs,
		Prober:         prober,
		MaxUploadBytes: cfg.Media.MaxUploadBytes,
		Log:            appLog,
	})

	// Uploads stream through to the remote API, so only the headers get a short deadline.
	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		appLog.Info("server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("ListenAndServe error", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		appLog.Error("server forced to shutdown", "error", err)
	}
	appLog.Info("server exiting")
}
