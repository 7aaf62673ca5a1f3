package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomfeed/internal/config"
	"roomfeed/internal/handlers"
	"roomfeed/internal/middleware"
	"roomfeed/internal/repository"
	"roomfeed/internal/service"
	"roomfeed/internal/uploads"
	"roomfeed/internal/worker"
	"roomfeed/pkg/database"
	"roomfeed/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	if cfg.Log.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   true,
		}
		defer rotating.Close()

		out := io.MultiWriter(os.Stderr, rotating)
		log.SetOutput(out)
		gin.DefaultWriter = out
		gin.DefaultErrorWriter = out
	}

	log.Println("=== roomfeed starting ===")

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	cacheRepo, redisStats, closeRedis := connectCache(cfg)
	defer closeRedis()

	store, err := uploads.NewStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal("Failed to prepare upload directory: ", err)
	}

	roomRepo := repository.NewRoomRepository(db)
	temperatureRepo := repository.NewTemperatureRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	roomService := service.NewRoomService(roomRepo)
	temperatureService := service.NewTemperatureService(temperatureRepo, roomRepo, cacheRepo, cfg.Redis.TTL)
	postService := service.NewPostService(postRepo, likeRepo, cacheRepo, store, cfg.Redis.TTL)

	scheduler := worker.NewScheduler()
	if cfg.Workers.UploadSweepEnabled {
		scheduler.AddWorker(worker.NewUploadSweepWorker(store, postRepo, cfg.Workers.UploadSweepInterval, cfg.Workers.UploadSweepGrace))
		log.Printf("Upload sweep worker enabled (interval: %v, grace: %v)",
			cfg.Workers.UploadSweepInterval, cfg.Workers.UploadSweepGrace)
	}

	go scheduler.Start()
	defer scheduler.Stop()

	systemService := service.NewSystemService(
		service.Repositories{
			Rooms:        roomRepo,
			Temperatures: temperatureRepo,
			Posts:        postRepo,
			Likes:        likeRepo,
			Cache:        cacheRepo,
		},
		func(ctx context.Context) error { return database.Ping(ctx, db) },
		redisStats,
		scheduler.Status,
	)

	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in DEBUG mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	routerCfg := handlers.RouterConfig{
		FrontendURL: cfg.App.FrontendURL,
		UploadDir:   cfg.Uploads.Dir,
		AccessLog:   true,
	}
	// Rate limiting (production only)
	if !cfg.App.Debug {
		routerCfg.RateLimiter = middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		log.Printf("Rate limiting enabled: %d req/sec, burst: %d",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	r := handlers.NewRouter(routerCfg, handlers.Handlers{
		System:       handlers.NewSystemHandler(systemService),
		Rooms:        handlers.NewRoomHandler(roomService),
		Temperatures: handlers.NewTemperatureHandler(temperatureService),
		Posts:        handlers.NewPostHandler(postService, cfg.Uploads.MaxBytes),
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", cfg.App.Port)
		log.Printf("Health check: http://localhost:%s/api/health", cfg.App.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: ", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		return
	}

	log.Println("Server exited properly")
}

// connectCache falls back to a no-op cache when Redis is disabled or
// unreachable; the service keeps working from the database alone.
func connectCache(cfg *config.Config) (repository.CacheRepository, func(context.Context) (map[string]string, error), func()) {
	noop := func() {}
	if !cfg.Redis.Enabled {
		log.Println("Redis disabled, caching is off")
		return repository.NewNoopCacheRepository(), nil, noop
	}

	client, err := redis.Connect(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, caching is off: %v", err)
		return repository.NewNoopCacheRepository(), nil, noop
	}

	stats := func(ctx context.Context) (map[string]string, error) {
		return redis.GetStats(ctx, client)
	}
	closeRedis := func() {
		if err := client.Close(); err != nil {
			log.Printf("Failed to close Redis: %v", err)
		}
	}
	return repository.NewCacheRepository(client), stats, closeRedis
}
