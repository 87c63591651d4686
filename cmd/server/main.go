package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveyhub/internal/cache"
	"surveyhub/internal/config"
	"surveyhub/internal/log"
	"surveyhub/internal/repository"
	"surveyhub/internal/service"
	"surveyhub/internal/transport/rest"
)

// @title SurveyHub API
// @version 1.0
// @description Survey authoring and response collection backend
// @host localhost:8080
// @BasePath /v1
func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err == nil {
		log.Info("loaded environment from .env")
	}
	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Info("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Info("Connected to Redis")

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	txRunner := repository.NewTxRunner(mongoClient)

	// Initialize cache
	surveyCache := cache.NewSurveyCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	surveySvc := service.NewSurveyService(surveyRepo, responseRepo, userRepo, surveyCache, txRunner)
	responseSvc := service.NewResponseService(responseRepo, surveyRepo)
	statsSvc := service.NewStatsService(surveyRepo, responseRepo, userRepo)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		SurveyService:   surveySvc,
		ResponseService: responseSvc,
		StatsService:    statsSvc,
		UploadDir:       cfg.UploadDir,
	}
	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Infof("Server starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Info("Server exited")
}
