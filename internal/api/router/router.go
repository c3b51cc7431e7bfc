package router

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/litreview/config"
	"github.com/d60-Lab/litreview/internal/api/handler"
	"github.com/d60-Lab/litreview/internal/api/middleware"
	"github.com/d60-Lab/litreview/pkg/token"
)

// New 组装 gin 引擎与全部路由
func New(cfg *config.Config, h *handler.Handler, tokenMaker *token.Maker) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.AccessLog())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Otel.Enabled {
		r.Use(otelgin.Middleware("litreview"))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.RateLimit.RPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
		}

		// 登录守卫之后的路由一律从 context 取身份
		authed := v1.Group("")
		authed.Use(middleware.Auth(tokenMaker))
		{
			authed.GET("/feed", h.Feed)
			authed.GET("/posts", h.MyPosts)

			authed.POST("/tickets", h.CreateTicket)
			authed.GET("/tickets/:id", h.GetTicket)
			authed.PUT("/tickets/:id", h.UpdateTicket)
			authed.DELETE("/tickets/:id", h.DeleteTicket)
			authed.POST("/tickets/:id/reviews", h.CreateReview)

			authed.POST("/reviews", h.CreateTicketWithReview)
			authed.PUT("/reviews/:id", h.UpdateReview)
			authed.DELETE("/reviews/:id", h.DeleteReview)

			rel := authed.Group("/relations")
			{
				rel.POST("/follow", h.Follow)
				rel.DELETE("/follow/:id", h.Unfollow)
				rel.GET("/following", h.ListFollowing)
				rel.GET("/followers", h.ListFollowers)
				rel.POST("/block", h.BlockUser)
				rel.DELETE("/block/:id", h.UnblockUser)
				rel.GET("/blocked", h.ListBlocked)
			}
		}
	}
	return r
}
