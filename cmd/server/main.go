package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"feedify/internal/cache"
	"feedify/internal/config"
	"feedify/internal/database"
	"feedify/internal/handlers"
	"feedify/internal/middleware"
	"feedify/internal/monitoring"
	"feedify/internal/services"
	"feedify/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	monitoring.RegisterHealthCheck("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})

	timelineService := services.TimelineService(services.NewTimelineService())
	var invalidator handlers.TimelineInvalidator
	var jobs *worker.JobQueue
	var jobWorker *worker.Worker

	if cfg.Redis.Enabled {
		cacheClient := cache.NewClient(&cache.Config{
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
		defer cacheClient.Close()

		cachedTimeline := services.NewCachedTimelineService(timelineService, cacheClient)
		timelineService = cachedTimeline
		invalidator = cachedTimeline

		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		jobs = worker.NewJobQueue(redisClient)
		jobWorker = newNotificationWorker(redisClient, cfg.Worker.Queues)
		jobWorker.Start(cfg.Worker.Concurrency)

		monitoring.RegisterHealthCheck("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.BurstSize,
			cfg.RateLimit.CleanupInterval,
		)
	}

	router := buildRouter(cfg, db, timelineService, invalidator, jobs, limiter)

	server := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	if jobWorker != nil {
		jobWorker.Stop()
	}
	if limiter != nil {
		limiter.Stop()
	}
}

func buildRouter(
	cfg *config.Config,
	db *gorm.DB,
	timelineService services.TimelineService,
	invalidator handlers.TimelineInvalidator,
	jobs *worker.JobQueue,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.Use(middleware.RequestID())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(monitoring.MetricsMiddleware())
	if limiter != nil {
		router.Use(limiter.Middleware())
	}
	router.Use(middleware.Identity(cfg.Auth.JWTSecret))

	userHandler := handlers.NewUserHandler(db, services.NewUserService())
	followHandler := handlers.NewFollowHandler(db, services.NewFollowService(), invalidator, jobs)
	postHandler := handlers.NewPostHandler(db, services.NewPostService(), invalidator, jobs)
	timelineHandler := handlers.NewTimelineHandler(db, timelineService)
	taskHandler := handlers.NewTaskHandler(db, services.NewTaskService())
	authHandler := handlers.NewAuthHandler(db,
		services.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		int64(cfg.Auth.TokenTTL.Seconds()),
	)

	router.POST("/auth/token", authHandler.Token)

	router.POST("/users", userHandler.CreateUser)
	router.GET("/users", userHandler.GetUsers)
	router.GET("/users/:id", userHandler.GetUser)
	router.PUT("/users/:id", userHandler.UpdateUser)
	router.DELETE("/users/:id", userHandler.DeleteUser)
	router.POST("/users/:id/follow", followHandler.Follow)

	router.POST("/posts", postHandler.CreatePost)
	router.GET("/posts", postHandler.GetPosts)
	router.GET("/posts/:id", postHandler.GetPost)
	router.POST("/posts/:id/comments", postHandler.AddComment)
	router.POST("/posts/:id/like", postHandler.LikePost)

	router.GET("/timeline", timelineHandler.GetTimeline)

	router.POST("/tasks", taskHandler.CreateTask)
	router.GET("/tasks", taskHandler.GetTasks)
	router.PUT("/tasks/:id", taskHandler.UpdateTask)
	router.DELETE("/tasks/:id", taskHandler.DeleteTask)

	router.GET("/healthz", monitoring.HealthHandler())
	router.GET("/metrics", monitoring.MetricsHandler())

	return router
}

func newNotificationWorker(redisClient *redis.Client, queues []string) *worker.Worker {
	w := worker.NewWorker(worker.Config{RedisClient: redisClient, Queues: queues})

	w.RegisterHandler(worker.JobTypeFollowNotification, func(ctx context.Context, job *worker.Job) error {
		log.Printf("notify: user %v has a new follower %v",
			job.Payload["following_id"], job.Payload["follower_id"])
		return nil
	})
	w.RegisterHandler(worker.JobTypeLikeNotification, func(ctx context.Context, job *worker.Job) error {
		log.Printf("notify: post %v by user %v now has %v likes",
			job.Payload["post_id"], job.Payload["author_id"], job.Payload["likes"])
		return nil
	})

	return w
}
