package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"eventmanagement/config"
	_ "eventmanagement/docs"
	"eventmanagement/internal/adapters/auth"
	"eventmanagement/internal/adapters/email"
	"eventmanagement/internal/adapters/storage"
	"eventmanagement/internal/cache"
	httpdelivery "eventmanagement/internal/delivery/http"
	"eventmanagement/internal/delivery/http/controllers"
	"eventmanagement/internal/domain"
	"eventmanagement/internal/repository/postgres"
	"eventmanagement/internal/services"
)

const shutdownTimeout = 10 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply the database schema before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if migrateOnStart {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	filterCache, closeCache := newCache(cfg.Redis)
	defer closeCache()

	images, err := storage.NewLocalImageStore(cfg.UploadDir, "/uploads")
	if err != nil {
		return err
	}

	tokenCfg := auth.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		Expiry:   cfg.JWT.Expiry,
	}
	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)

	uow := postgres.NewUnitOfWork(db)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	userService := services.NewUserService(uow.Users(), auth.NewBcryptHasher(cfg.BcryptCost), auth.NewJWTIssuer(tokenCfg), emailService, logger)
	filterInvalidator := services.NewFilterInvalidator(filterCache, logger)
	venueService := services.NewVenueService(uow, filterInvalidator, logger)
	eventService := services.NewEventService(uow, filterInvalidator, logger)
	filterService := services.NewFilterService(uow, filterCache, cfg.Redis.TTL, logger)

	handler := httpdelivery.NewHandler(httpdelivery.Controllers{
		Users:      controllers.NewUserController(logger, userService),
		Admin:      controllers.NewAdminController(logger, userService, venueService),
		Venues:     controllers.NewVenueController(logger, venueService),
		Performers: controllers.NewPerformerController(logger, services.NewPerformerService(uow.Performers())),
		Events:     controllers.NewEventController(logger, eventService, filterService, images),
	}, httpdelivery.RouterConfig{
		Verifier:       auth.NewJWTVerifier(tokenCfg),
		DB:             db,
		UploadDir:      cfg.UploadDir,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newCache connects to Redis when configured and falls back to no caching
// when Redis is absent or unreachable.
func newCache(rc config.RedisConfig) (domain.Cache, func()) {
	if rc.Addr == "" {
		return cache.NewNoopCache(), func() {}
	}
	redisCache, err := cache.NewRedisCache(cache.RedisConfig{Addr: rc.Addr, Password: rc.Password, DB: rc.DB})
	if err != nil {
		logger.Warn("redis unavailable, filter options will not be cached", "addr", rc.Addr, "err", err)
		return cache.NewNoopCache(), func() {}
	}
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			logger.Warn("close redis", "err", err)
		}
	}
}
