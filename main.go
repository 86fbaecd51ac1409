package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopsquad/shopsquad-backend/config"
	"github.com/shopsquad/shopsquad-backend/db"
	"github.com/shopsquad/shopsquad-backend/handlers"
	"github.com/shopsquad/shopsquad-backend/internal/events"
	"github.com/shopsquad/shopsquad-backend/internal/store/postgres"
	"github.com/shopsquad/shopsquad-backend/logger"
	"github.com/shopsquad/shopsquad-backend/models"
	"github.com/shopsquad/shopsquad-backend/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisOptions := &redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	if cfg.Redis.UseTLS {
		redisOptions.TLSConfig = &tls.Config{
			ServerName: cfg.Redis.Address,
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(redisOptions)
	defer func() {
		_ = redisClient.Close()
	}()

	broker := events.NewBroker(events.Config{
		BufferSize: cfg.EventService.EventBufferSize,
	})

	userStore := postgres.NewUserStore(pool)
	householdStore := postgres.NewHouseholdStore(pool)
	groceryStoreStore := postgres.NewGroceryStoreStore(pool)
	inventoryStore := postgres.NewInventoryStore(pool)
	tripStore := postgres.NewTripStore(pool)
	tripItemStore := postgres.NewTripItemStore(pool)

	userModel := models.NewUserModel(userStore, cfg.Server.JwtSecretKey, cfg.Server.TokenTTL())
	householdModel := models.NewHouseholdModel(householdStore)
	groceryStoreModel := models.NewGroceryStoreModel(groceryStoreStore, householdModel)
	inventoryModel := models.NewInventoryModel(inventoryStore, householdModel)
	tripModel := models.NewTripModel(tripStore, broker)
	tripItemModel := models.NewTripItemModel(tripItemStore, tripModel, broker)

	r := router.SetupRouter(router.Dependencies{
		Config:              cfg,
		RedisClient:         redisClient,
		UserHandler:         handlers.NewUserHandler(userModel),
		HouseholdHandler:    handlers.NewHouseholdHandler(householdModel),
		GroceryStoreHandler: handlers.NewGroceryStoreHandler(groceryStoreModel),
		InventoryHandler:    handlers.NewInventoryHandler(inventoryModel),
		TripHandler:         handlers.NewTripHandler(tripModel),
		TripItemHandler:     handlers.NewTripItemHandler(tripItemModel, tripModel, broker),
		WSHandler:           handlers.NewWSHandler(tripModel, broker, &cfg.Server),
		HealthHandler:       handlers.NewHealthHandler(pool, redisClient),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Starting server", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server shutdown error", "error", err)
	}
	if err := broker.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Event broker shutdown error", "error", err)
	}
	log.Info("Server stopped")
}
