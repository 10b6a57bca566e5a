package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/forgeline/storefront/internal/http/handlers"
	imw "github.com/forgeline/storefront/internal/http/middleware"
	"github.com/forgeline/storefront/internal/platform/auth"
	"github.com/forgeline/storefront/internal/platform/mailer"
	pgrepo "github.com/forgeline/storefront/internal/repo/postgres"
	"github.com/forgeline/storefront/internal/repo/redisdoc"
	"github.com/forgeline/storefront/internal/store"
	"github.com/forgeline/storefront/pkg/config"
	"github.com/forgeline/storefront/pkg/database"
	"github.com/forgeline/storefront/pkg/events"
	"github.com/forgeline/storefront/pkg/logger"
	mw "github.com/forgeline/storefront/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()

	// Primary store
	pool, err := database.ConnectPostgres(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Secondary (document) store
	rdb, err := database.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Event bus. Inquiry intake must survive a broker outage, so a
	// failed connect degrades to a no-op publisher.
	var bus events.Publisher
	bus, err = events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Warn("NATS unavailable, domain events disabled", "error", err)
		bus = events.NoopBus{}
	}
	defer bus.Close()

	// Stores
	primary := pgrepo.NewInquiryRepo(pool)
	secondary := redisdoc.NewInquiryRepo(rdb)
	inquiries := store.NewDual(primary, secondary)

	// Notification provider chain, tried strictly in order
	providers := []mailer.Provider{
		mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.NotifyTo),
		mailer.NewSMTP(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom, cfg.Email.NotifyTo,
			cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS),
		mailer.NewTemplate(),
	}
	if cfg.Email.DevMode {
		providers = append(providers, mailer.NewDev())
	}
	notifier := mailer.NewChain(providers...)

	// Admin auth. Sessions are in-memory only: a restart logs every
	// admin out.
	sessions := auth.NewSessionStore(cfg.Admin.SessionTTL)
	creds := auth.Credentials{
		Hash:  cfg.Admin.PasswordHash,
		Salt:  cfg.Admin.PasswordSalt,
		Plain: cfg.Admin.Password,
	}

	h := handlers.New(inquiries, notifier, sessions, creds, bus)

	submitLimiter := imw.NewRateLimiter(rdb, imw.RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
	})
	idempotency := imw.Idempotency(imw.NewRedisIdempotencyStore(rdb))

	// Setup router
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("storefront"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		MaxAge:         300,
	}))

	r.Route("/", func(r chi.Router) {
		// Public inquiry intake
		r.With(submitLimiter.Middleware(), idempotency).Post("/inquiries", h.SubmitInquiry)

		// Admin auth
		r.Post("/admin/login", h.Login)
		r.Get("/admin/session", h.VerifySession)
		r.Post("/admin/logout", h.Logout)

		// Admin inquiry management (requires live session)
		r.Route("/admin/inquiries", func(r chi.Router) {
			r.Use(imw.RequireAdminSession(sessions))
			r.Get("/", h.ListInquiries)
			r.Patch("/{id}/status", h.UpdateInquiryStatus)
			r.Delete("/{id}", h.DeleteInquiry)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down storefront API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Storefront API shutdown error", "error", err)
		}
	}()

	logger.Info("Starting storefront API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Storefront API error", "error", err)
		os.Exit(1)
	}
}
