package handlers

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"roomfeed/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const healthPath = "/api/health"

type Handlers struct {
	System       *SystemHandler
	Rooms        *RoomHandler
	Temperatures *TemperatureHandler
	Posts        *PostHandler
}

type RouterConfig struct {
	FrontendURL string
	UploadDir   string
	// RateLimiter is optional; nil disables per-IP limiting.
	RateLimiter *middleware.IPRateLimiter
	AccessLog   bool
}

func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	if cfg.AccessLog {
		r.Use(gin.LoggerWithFormatter(middleware.AccessLogFormatter))
	}
	r.Use(middleware.Recovery())

	origins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" && cfg.FrontendURL != origins[0] {
		origins = append(origins, cfg.FrontendURL)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RateLimiter != nil {
		r.Use(middleware.IPRateLimitMiddleware(cfg.RateLimiter, healthPath))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, NewNotFoundError("Resource not found"))
	})

	r.GET("/", h.System.Home)
	// image_url values are "<upload dir>/<name>", so files are served under the same path
	if prefix := staticPrefix(cfg.UploadDir); prefix != "/" {
		r.Static(prefix, cfg.UploadDir)
	}

	api := r.Group("/api")

	api.POST("/room", h.Rooms.CreateRoom)
	api.GET("/room/:id", h.Rooms.GetRoom)
	api.GET("/room/:id/average", h.Temperatures.GetRoomAverage)
	api.GET("/rooms", h.Rooms.ListRooms)

	api.POST("/temperature", h.Temperatures.AddTemperature)
	api.GET("/temperature/export", h.Temperatures.Export)
	api.GET("/average", h.Temperatures.GetAverage)

	api.POST("/post", h.Posts.CreatePost)
	api.GET("/posts", h.Posts.ListPosts)
	api.GET("/post/:id", h.Posts.GetPost)
	api.GET("/post/:id/likes", h.Posts.GetLikes)
	api.POST("/like", h.Posts.LikePost)

	api.GET("/health", h.System.Health)
	api.GET("/system/stats", h.System.Stats)

	return r
}

func staticPrefix(dir string) string {
	clean := filepath.ToSlash(filepath.Clean(dir))
	if dir == "" || clean == "." || clean == "/" {
		return "/"
	}
	return "/" + strings.Trim(clean, "/")
}
