package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HealthChecker は依存先の疎通を確認します。
type HealthChecker func(ctx context.Context) error

// RouterConfig はルーターの構築に必要な値です。
type RouterConfig struct {
	AllowedOrigins []string
	CookieName     string
	Verifier       TokenVerifier
	Health         HealthChecker
	// AccessLog は gin のアクセスログの出力先です。nil の場合は gin.DefaultWriter です。
	AccessLog      io.Writer
	Logger         *slog.Logger
}

// Handlers はルーターへ登録するハンドラー群です。
type Handlers struct {
	Users        *UserHandler
	Applications *ApplicationHandler
	Catalog      *CatalogHandler
}

// NewRouter は gin.Engine を構築します。
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    cfg.AccessLog,
		SkipPaths: []string{"/healthz"},
	}), gin.Recovery())

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", healthz(cfg.Health, logger))

	auth := RequireAuth(cfg.Verifier, cfg.CookieName)

	v1 := r.Group("/api/v1")
	{
		user := v1.Group("/user")
		{
			user.POST("/register", h.Users.Register)
			user.POST("/login", h.Users.Login)
			user.GET("/logout", h.Users.Logout)
			user.POST("/profile/update", auth, h.Users.UpdateProfile)
			user.GET("/me", auth, h.Users.Me)
		}

		app := v1.Group("/application", auth)
		{
			app.GET("/apply/:id", h.Applications.Apply)
			app.GET("/get", h.Applications.AppliedJobs)
			app.GET("/:id/applicants", h.Applications.Applicants)
			app.POST("/status/:id/update", h.Applications.UpdateStatus)
		}

		v1.GET("/company/get/:id", auth, h.Catalog.GetCompany)
		v1.GET("/job/get/:id", auth, h.Catalog.GetJob)
	}

	return r
}

func healthz(check HealthChecker, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				logger.WarnContext(c.Request.Context(), "health check failed", slog.Any("error", err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
