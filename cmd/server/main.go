package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"triviasnake/internal/cache"
	"triviasnake/internal/config"
	"triviasnake/internal/repository"
	"triviasnake/internal/service"
	"triviasnake/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Model:     %s", aiConfig.Model)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:   configured ✓")
	} else {
		log.Println("  API Key:   NOT SET (moderation passes through, quiz generation off)")
	}

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

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	adventureRepo := repository.NewAdventureRepo(db)
	userRepo := repository.NewUserRepo(db)
	imageStore, err := repository.NewImageStore(db)
	if err != nil {
		log.Fatal("Failed to create image store:", err)
	}

	// Initialize caches
	scoreStore := cache.NewScoreStore(rdb)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	quizSvc := service.NewQuizAIService(aiConfig)
	leaderboardSvc := service.NewLeaderboardService(scoreStore)
	adventureSvc := service.NewAdventureService(adventureRepo, imageStore, quizSvc)

	// Create router with container
	container := &rest.Container{
		AuthService:        authSvc,
		LeaderboardService: leaderboardSvc,
		AdventureService:   adventureSvc,
		QuizService:        quizSvc,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/register")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET/POST /v1/leaderboard")
		log.Println("  GET/POST /v1/adventures")
		log.Println("  GET/PUT/DELETE /v1/adventures/{adventureId}")
		log.Println("  GET  /v1/images/{imageId}")
		log.Println("  POST /v1/generate-quiz")

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
