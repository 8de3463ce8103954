package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveypulse/internal/cache"
	"surveypulse/internal/config"
	"surveypulse/internal/repository"
	"surveypulse/internal/service"
	"surveypulse/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	userRepo := repository.NewUserRepo(db)

	// The unique index on (surveyId, userId) is what makes submissions
	// race-free; refuse to start without it.
	if err := responseRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create response indexes:", err)
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create user indexes:", err)
	}
	log.Println("Indexes ensured")

	// Initialize caches
	respondedCache := cache.NewRespondedCache(rdb)
	resultsCache := cache.NewResultsCache(rdb)
	activityCache := cache.NewActivityCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.SessionTTL)
	surveySvc := service.NewSurveyService(surveyRepo, responseRepo, resultsCache, activityCache)
	responseSvc := service.NewResponseService(surveyRepo, responseRepo, respondedCache, resultsCache, activityCache)
	resultsSvc := service.NewResultsService(surveyRepo, responseRepo, resultsCache, activityCache)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		SurveyService:   surveySvc,
		ResponseService: responseSvc,
		ResultsService:  resultsSvc,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/register")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/surveys")
		log.Println("  GET  /v1/surveys/{surveyId}")
		log.Println("  POST /v1/surveys/{surveyId}/responses")
		log.Println("  GET  /v1/surveys/{surveyId}/responses/me")
		log.Println("  POST/PUT/DELETE /v1/surveys (admin)")
		log.Println("  GET  /v1/surveys/{surveyId}/results (admin)")
		log.Println("  GET  /v1/admin/overview (admin)")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
