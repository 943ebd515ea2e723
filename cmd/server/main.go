package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/debateclub/debate-club-api/internal/auth"
	"github.com/debateclub/debate-club-api/internal/config"
	"github.com/debateclub/debate-club-api/internal/database"
	"github.com/debateclub/debate-club-api/internal/handler"
	"github.com/debateclub/debate-club-api/internal/metrics"
	"github.com/debateclub/debate-club-api/internal/middleware"
	"github.com/debateclub/debate-club-api/internal/notify"
	"github.com/debateclub/debate-club-api/internal/payment"
	"github.com/debateclub/debate-club-api/internal/repository"
	"github.com/debateclub/debate-club-api/internal/router"
	"github.com/debateclub/debate-club-api/internal/sanitize"
	"github.com/debateclub/debate-club-api/internal/storage"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	files, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	debates := repository.NewDebateRepo(db)
	votes := repository.NewVoteRepo(db)
	comments := repository.NewCommentRepo(db)
	photos := repository.NewPhotoRepo(db)
	payments := repository.NewPaymentRepo(db)
	subs := repository.NewSubscriptionRepo(db)

	provider := auth.NewHTTPIdentityProvider(cfg.AuthProviderURL)
	sessionSvc := auth.NewService(provider, users, sessions, cfg.SessionTTLDays)
	sanitizer := sanitize.New()
	stripe := payment.NewStripeClient(cfg.StripeSecretKey)

	deps := router.Deps{
		Cfg:           cfg,
		RateCfg:       config.LoadRateLimitConfig(),
		CacheCfg:      config.LoadCacheConfig(),
		Redis:         rdb,
		Gatherer:      reg,
		Auth:          handler.NewAuthHandler(cfg, sessionSvc, collector),
		Debates:       handler.NewDebateHandler(debates, votes, sanitizer),
		Comments:      handler.NewCommentHandler(comments, debates, sanitizer),
		Photos:        handler.NewPhotoHandler(photos, files),
		Payments:      handler.NewPaymentHandler(payments, stripe, cfg.StripeWebhookKey),
		Notifications: handler.NewNotificationHandler(subs, sanitizer, cfg.AMQPURL),
		SessionAuth:   middleware.SessionAuth(sessionSvc, collector),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, deps)

	if cfg.AMQPURL != "" {
		go func() {
			if err := notify.StartConsumer(cfg.AMQPURL, collector); err != nil {
				log.Printf("notification consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
