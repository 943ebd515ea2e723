// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/debateclub/debate-club-api/internal/config"
	"github.com/debateclub/debate-club-api/internal/handler"
	"github.com/debateclub/debate-club-api/internal/metrics"
	"github.com/debateclub/debate-club-api/internal/middleware"
)

// Deps bundles everything route registration needs. The caller builds
// the handlers; this package only decides who sits behind which guard.
type Deps struct {
	Cfg           config.Config
	RateCfg       config.RateLimitConfig
	CacheCfg      config.CacheConfig
	Redis         *redis.Client
	Gatherer      prometheus.Gatherer
	Auth          *handler.AuthHandler
	Debates       *handler.DebateHandler
	Comments      *handler.CommentHandler
	Photos        *handler.PhotoHandler
	Payments      *handler.PaymentHandler
	Notifications *handler.NotificationHandler
	SessionAuth   echo.MiddlewareFunc
}

// Register mounts the whole HTTP surface: health and metrics at the
// root, the public API under /api, and admin routes behind bearer auth.
func Register(e *echo.Echo, d Deps) {
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowCredentials: false,
	}))

	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(d.Gatherer)))

	api := e.Group("/api")
	api.GET("/", handler.Root)
	api.GET("", handler.Root)

	adminGuard := middleware.AdminAuth(d.Cfg.JWTSecret)
	limited := middleware.RateLimit(d.RateCfg, d.Redis)
	cached := middleware.ResponseCache(d.CacheCfg, d.Redis)

	// Auth. Login endpoints are rate limited; profile needs a session.
	api.POST("/admin/login", d.Auth.AdminLogin, limited)
	api.POST("/auth/callback", d.Auth.OAuthCallback, limited)
	api.GET("/auth/profile", d.Auth.Profile, d.SessionAuth)
	api.POST("/auth/logout", d.Auth.Logout)

	// Debates. Reads are public and cached; writes are either public
	// interactions (vote, join) or admin CRUD.
	api.GET("/debates", d.Debates.List, cached)
	api.GET("/debates/:id", d.Debates.Get, cached)
	api.POST("/debates/vote", d.Debates.Vote)
	api.POST("/debates/join", d.Debates.Join)
	api.POST("/debates", d.Debates.Create, adminGuard)
	api.PUT("/debates/:id", d.Debates.Update, adminGuard)
	api.DELETE("/debates/:id", d.Debates.Delete, adminGuard)

	// Comments.
	api.GET("/comments/:debate_id", d.Comments.List, cached)
	api.POST("/comments", d.Comments.Create)

	// Photos. Binary fetch is deliberately uncached; the JSON cache only
	// understands JSON bodies.
	api.GET("/photos", d.Photos.List, cached)
	api.GET("/photos/:id/file", d.Photos.File)
	api.POST("/photos", d.Photos.Upload, adminGuard)
	api.DELETE("/photos/:id", d.Photos.Delete, adminGuard)

	// Payments.
	api.GET("/payments/packages", d.Payments.Packages, cached)
	api.POST("/payments/checkout/session", d.Payments.CreateCheckoutSession)
	api.GET("/payments/checkout/status/:id", d.Payments.CheckoutStatus)
	api.GET("/payments/transactions", d.Payments.Transactions, adminGuard)
	api.POST("/webhook/stripe", d.Payments.Webhook)

	// Notifications. Unsubscribing is a DELETE on the subscribe path; the
	// POST alias stays for clients that cannot send DELETE bodies.
	api.POST("/notifications/subscribe", d.Notifications.Subscribe)
	api.DELETE("/notifications/subscribe", d.Notifications.Unsubscribe)
	api.POST("/notifications/unsubscribe", d.Notifications.Unsubscribe)
	api.POST("/notifications/send", d.Notifications.Send, adminGuard)
}
