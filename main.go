package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-tracker/backend/internal/cache"
	"task-tracker/backend/internal/config"
	"task-tracker/backend/internal/database"
	"task-tracker/backend/internal/handlers"
	"task-tracker/backend/internal/middleware"
	"task-tracker/backend/internal/models"
	"task-tracker/backend/internal/monitoring"
	"task-tracker/backend/internal/repositories"
	"task-tracker/backend/internal/services"
	"task-tracker/backend/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel := logger.Info
	if cfg.IsProduction() {
		logLevel = logger.Warn
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewDatabasePool(&database.PoolConfig{
		DSN:             cfg.GetDatabaseDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		LogLevel:        logLevel,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisCache := cache.NewRedisCache(&cache.CacheConfig{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	multiCache := cache.NewMultiLevelCache(redisCache)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	taskRepo := repositories.NewTaskRepository()
	userRepo := repositories.NewUserRepository()

	taskService := services.NewCachedTaskService(services.NewTaskService(taskRepo), multiCache)
	registerService := services.NewRegisterService(userRepo, cfg.Auth.BCryptCost)

	jobQueue := worker.NewJobQueue(redisClient)
	jobWorker := worker.NewWorker(worker.WorkerConfig{
		RedisClient: redisClient,
		Queues:      append(cfg.Worker.Queues, "retry_queue"),
	})
	jobWorker.RegisterHandler(worker.JobTypeTaskCleanup,
		worker.NewTaskCleanupHandler(db, cfg.Worker.CompletedRetention, cfg.Worker.CleanupInterval, jobQueue))
	jobWorker.RegisterHandler(worker.JobTypeUserWelcome, worker.NewUserWelcomeHandler())
	jobWorker.Start(cfg.Worker.Concurrency)

	if err := jobQueue.EnqueueAt("maintenance", worker.JobTypeTaskCleanup, nil,
		time.Now().Add(cfg.Worker.CleanupInterval)); err != nil {
		log.Printf("Failed to schedule task cleanup: %v", err)
	}

	taskHandler := handlers.NewTaskHandler(db, taskService)
	registerHandler := handlers.NewRegisterHandler(db, registerService, jobQueue)

	monitoring.RegisterHealthCheck("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	monitoring.RegisterHealthCheck("redis", func(ctx context.Context) error {
		return redisCache.Health()
	})

	rateLimiter := middleware.NewRateLimiter(
		cfg.RateLimit.RequestsPerMin,
		cfg.RateLimit.BurstSize,
		cfg.RateLimit.CleanupInterval,
	)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RecoveryWithLog())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(cors.Default())
	if cfg.RateLimit.Enabled {
		router.Use(rateLimiter.Middleware())
	}

	api := router.Group("/api")
	{
		api.POST("/register", registerHandler.Register)
		api.GET("/tasks", taskHandler.ListTasks)
		api.GET("/tasks/:id", taskHandler.GetTaskByID)
		api.POST("/tasks", taskHandler.CreateTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
	}

	router.GET("/health", monitoring.HealthHandler())
	router.GET("/ready", monitoring.ReadinessHandler())
	router.GET("/live", monitoring.LivenessHandler())
	router.GET("/metrics", monitoring.MetricsHandler())

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.GetServerAddr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	jobWorker.Stop()
	rateLimiter.Stop()

	if err := multiCache.Close(); err != nil {
		log.Printf("Cache close error: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Println("Shutdown complete")
}
