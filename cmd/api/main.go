package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/auth"
	"github.com/xavierca1/nhfg-leads/internal/config"
	"github.com/xavierca1/nhfg-leads/internal/infra/database"
	"github.com/xavierca1/nhfg-leads/internal/infra/http/handlers"
	"github.com/xavierca1/nhfg-leads/internal/infra/http/middleware"
	"github.com/xavierca1/nhfg-leads/internal/infra/integration/kommo"
	"github.com/xavierca1/nhfg-leads/internal/infra/mail"
	"github.com/xavierca1/nhfg-leads/internal/infra/queue"
	"github.com/xavierca1/nhfg-leads/internal/infra/worker"
	"github.com/xavierca1/nhfg-leads/internal/logger"
	"github.com/xavierca1/nhfg-leads/internal/normalizer"
	"github.com/xavierca1/nhfg-leads/internal/usecase"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Database
	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL, database.DefaultPoolConfig)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	leadRepo := database.NewLeadRepository(db)
	clientRepo := database.NewClientRepository(db)
	userRepo := database.NewUserRepository(db)
	logRepo := database.NewIntegrationLogRepository(db)
	dashboardRepo := database.NewDashboardRepository(db)

	// 2. Lead events (optional)
	var (
		publisher usecase.LeadEventPublisher
		broker    handlers.BrokerConn
	)
	if cfg.RabbitMQURL != "" {
		rmq, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Warn("rabbitmq unavailable, lead events disabled", zap.Error(err))
		} else {
			defer rmq.Close()
			publisher = queue.NewProducer(rmq.Ch)
			broker = rmq.Conn

			if cfg.LeadWorkerEnabled {
				if err := startLeadWorker(ctx, cfg, rmq, log); err != nil {
					log.Warn("lead worker not started", zap.Error(err))
				}
			}
		}
	}

	// 3. Background jobs
	go worker.NewStaleIngestionWorker(logRepo, cfg.StaleIngestionAfter, cfg.StaleIngestionInterval, log).Start(ctx)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	go limiter.Cleanup(ctx, 5*time.Minute)

	// 4. Use cases
	key := auth.SigningKey(cfg.JWTSecret)
	loginUC := usecase.NewLoginUseCase(userRepo, auth.NewIssuer(key), auth.NewHasher(cfg.BcryptCost), cfg.AuthEnforcePassword, log)
	listLeadsUC := usecase.NewListLeadsUseCase(leadRepo)
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, publisher, log)
	ingestUC := usecase.NewIngestWebhookUseCase(logRepo, leadRepo, normalizer.NewRegistry(), publisher, log)
	dashboardUC := usecase.NewDashboardMetricsUseCase(dashboardRepo)

	var welcome usecase.ClientWelcomeSender
	if sender := newMailSender(cfg); sender != nil {
		welcome = sender
	}
	listClientsUC := usecase.NewListClientsUseCase(clientRepo)
	createClientUC := usecase.NewCreateClientUseCase(clientRepo, welcome, log)

	// 5. HTTP
	router := newRouter(routerDeps{
		Auth:           handlers.NewAuthHandler(loginUC, log),
		Leads:          handlers.NewLeadHandler(listLeadsUC, createLeadUC, log),
		Clients:        handlers.NewClientHandler(listClientsUC, createClientUC, log),
		Webhooks:       handlers.NewWebhookHandler(ingestUC, log),
		Dashboard:      handlers.NewDashboardHandler(dashboardUC, log),
		Health:         handlers.NewHealthHandler(db, broker, version),
		Verifier:       auth.NewVerifier(key),
		Limiter:        limiter,
		AllowedOrigins: cfg.AllowedOrigins(),
		TrustProxy:     cfg.TrustProxyHeaders,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// startLeadWorker consumes on its own channel so publishing is never
// blocked behind deliveries.
func startLeadWorker(ctx context.Context, cfg *config.Config, rmq *queue.RabbitMQ, log *zap.Logger) error {
	ch, err := rmq.Conn.Channel()
	if err != nil {
		return err
	}
	if err := ch.Qos(10, 0, false); err != nil {
		ch.Close()
		return err
	}

	var crm queue.CRMClient
	if cfg.KommoEnabled() {
		crm = kommo.NewClient(cfg.KommoBaseURL, cfg.KommoAPIToken)
	}

	var alerts queue.AlertSender
	if cfg.MailEnabled() {
		alerts = newMailSender(cfg)
	}

	w := queue.NewWorker(ch, crm, alerts, log.Named("lead-worker"))
	go func() {
		defer ch.Close()
		if err := w.Start(ctx); err != nil {
			log.Error("lead worker exited", zap.Error(err))
		}
	}()
	return nil
}

// newMailSender returns nil without MAIL_HOST. Lead alerts additionally
// need LEAD_ALERT_EMAIL; client welcomes are addressed per client.
func newMailSender(cfg *config.Config) *mail.EmailSender {
	if cfg.MailHost == "" {
		return nil
	}
	from := cfg.MailFrom
	if from == "" {
		from = cfg.MailUser
	}
	return mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, from, cfg.LeadAlertEmail)
}
