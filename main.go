package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/templatehub/backend/handlers"
	"github.com/templatehub/backend/internal/config"
	"github.com/templatehub/backend/internal/database"
	newshandler "github.com/templatehub/backend/internal/news/handler"
	newsrepo "github.com/templatehub/backend/internal/news/repository"
	newsservice "github.com/templatehub/backend/internal/news/service"
	projecthandler "github.com/templatehub/backend/internal/project/handler"
	projectrepo "github.com/templatehub/backend/internal/project/repository"
	projectservice "github.com/templatehub/backend/internal/project/service"
	"github.com/templatehub/backend/internal/sessions"
	"github.com/templatehub/backend/internal/storage"
	templatehandler "github.com/templatehub/backend/internal/template/handler"
	templaterepo "github.com/templatehub/backend/internal/template/repository"
	templateservice "github.com/templatehub/backend/internal/template/service"
	"github.com/templatehub/backend/internal/tokens"
	"github.com/templatehub/backend/internal/users"
	"github.com/templatehub/backend/pkg/logger"
	"github.com/templatehub/backend/pkg/metrics"
	"github.com/templatehub/backend/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: env=%s mongo=%v redis=%v", cfg.Server.Environment, cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.CORS(cfg.CORS.Origins))
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.Use(middleware.ErrorHandler(cfg.Server.Environment))

	// Connect to Redis early so the rate limiter, sessions and the token
	// blacklist can use it when configured
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rdb = nil
		} else {
			sessions.SetBlacklistClient(rdb)
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Max, cfg.RateLimit.Window))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// MongoDB is a hard dependency; retry with backoff to tolerate startup
	// races, then give up with a non-zero exit.
	ctx := context.Background()
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if errConn == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if errConn != nil {
		logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
	}
	defer func() { _ = client.Disconnect(ctx) }()
	db := client.Database(cfg.MongoDB.Database)

	templateSvc := templateservice.New(templaterepo.NewMongoRepo(db.Collection("templates")))
	projectSvc := projectservice.New(projectrepo.NewMongoRepo(db.Collection("projects")))
	newsSvc := newsservice.New(newsrepo.NewMongoRepo(db.Collection("news")))

	userSvc := users.NewService(users.NewMongoUserRepository(db.Collection("users")))

	// sessions live in Redis when available, otherwise Mongo
	var sessionsSvc *sessions.Service
	if rdb != nil {
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(rdb, "session:"))
		logger.Infof("Using Redis for session storage")
	} else {
		sessionsSvc = sessions.NewService(sessions.NewMongoRepository(db.Collection("sessions")))
	}

	r.GET("/ready", func(c *gin.Context) {
		deps := gin.H{
			"mongodb": client.Ping(c.Request.Context(), nil) == nil,
			"redis":   rdb == nil || rdb.Ping(c.Request.Context()).Err() == nil,
		}
		for _, ok := range deps {
			if ok != true {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	api := r.Group("/api")
	templatehandler.RegisterRoutes(api.Group("/templates"), templateSvc)
	projecthandler.RegisterRoutes(api.Group("/projects"), projectSvc)
	newshandler.RegisterRoutes(api.Group("/news"), newsSvc)

	// auth routes carry stricter per-route limits
	var loginLimit, registerLimit gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			loginLimit = middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.Login.Max, cfg.RateLimit.Login.Window)
			registerLimit = middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.Register.Max, cfg.RateLimit.Register.Window)
		} else {
			loginLimit = middleware.RateLimitMiddleware(cfg.RateLimit.Login.Max, cfg.RateLimit.Login.Window)
			registerLimit = middleware.RateLimitMiddleware(cfg.RateLimit.Register.Max, cfg.RateLimit.Register.Window)
		}
	}
	authHandler := handlers.NewAuthHandler(cfg, userSvc, sessionsSvc)
	authHandler.Register(api, loginLimit, registerLimit)

	verifier := tokens.NewVerifier(cfg)
	api.GET("/me", middleware.AuthMiddleware(verifier), func(c *gin.Context) {
		claims, _ := c.Get("claims")
		c.JSON(http.StatusOK, gin.H{"claims": claims})
	})

	// media uploads are optional: mounted only when MinIO is configured
	if cfg.MinIO.Endpoint != "" {
		store, err := storage.NewMinIOStorage(&cfg.MinIO)
		if err != nil {
			logger.Warnf("media storage unavailable: %v", err)
		} else {
			handlers.NewMediaHandler(store).Register(api)
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("Starting API server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	// graceful shutdown: stop accepting, drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
	}
	logger.Infof("server stopped")
}
