package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/JakeWimberley/Weathredds/config"
	authadapter "github.com/JakeWimberley/Weathredds/internal/adapters/auth"
	"github.com/JakeWimberley/Weathredds/internal/adapters/email"
	delivery "github.com/JakeWimberley/Weathredds/internal/delivery/http"
	"github.com/JakeWimberley/Weathredds/internal/delivery/http/middleware"
	"github.com/JakeWimberley/Weathredds/internal/repository/postgres"
	"github.com/JakeWimberley/Weathredds/internal/services"
)

const serviceTimeout = 5 * time.Second

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(logger, cfg.DBUrl, cfg.MigrationsPath); err != nil {
		logger.Error("run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	threadRepo := postgres.NewThreadRepository(db)
	discussionRepo := postgres.NewDiscussionRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	pinRepo := postgres.NewPinRepository(db)
	invitationRepo := postgres.NewEventInvitationRepository(db)

	hasher := authadapter.NewBcryptHasher(10)
	issuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailerProvider,
		FromAddress: cfg.MailerFromAddress,
		FromName:    cfg.MailerFromName,
		BaseURL:     cfg.BaseURL,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("create mailer", "error", err)
		os.Exit(1)
	}

	authSvc := services.NewAuthService(userRepo, hasher, issuer, cfg.JWTExpiry, serviceTimeout)
	eventSvc := services.NewEventService(eventRepo, threadRepo, discussionRepo, tagRepo,
		pinRepo, invitationRepo, userRepo, mailer, serviceTimeout)
	threadSvc := services.NewThreadService(threadRepo, discussionRepo, eventRepo, serviceTimeout)
	tagSvc := services.NewTagService(tagRepo, eventRepo, serviceTimeout)
	pinSvc := services.NewPinService(pinRepo, eventRepo, serviceTimeout)
	searchSvc := services.NewSearchService(eventRepo, threadRepo, discussionRepo, serviceTimeout)
	discussionSvc := services.NewDiscussionService(discussionRepo, serviceTimeout)

	mux := delivery.NewRouter(delivery.Controllers{
		Auth:       delivery.NewAuthController(authSvc),
		Event:      delivery.NewEventController(eventSvc),
		Thread:     delivery.NewThreadController(threadSvc),
		Tag:        delivery.NewTagController(tagSvc),
		Pin:        delivery.NewPinController(pinSvc),
		Search:     delivery.NewSearchController(searchSvc),
		Discussion: delivery.NewDiscussionController(discussionSvc),
	}, verifier)

	handler := middleware.RequestID(
		middleware.LoggingMiddleware(logger,
			middleware.CORS(cfg.AllowedOrigins, mux)))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
