package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Amsaho/jobhunt/internal/adapters/http/handler"
	"github.com/Amsaho/jobhunt/internal/adapters/mail"
	"github.com/Amsaho/jobhunt/internal/adapters/repository/postgres"
	"github.com/Amsaho/jobhunt/internal/adapters/storage"
	"github.com/Amsaho/jobhunt/internal/core/account"
	"github.com/Amsaho/jobhunt/internal/core/application"
	"github.com/Amsaho/jobhunt/internal/core/company"
	"github.com/Amsaho/jobhunt/internal/core/job"
	"github.com/Amsaho/jobhunt/internal/core/notification"
	"github.com/Amsaho/jobhunt/internal/platform/auth"
	"github.com/Amsaho/jobhunt/internal/platform/config"
	pg "github.com/Amsaho/jobhunt/internal/platform/db/postgres"
	"github.com/Amsaho/jobhunt/internal/platform/server"
	"github.com/gin-gonic/gin"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database pool: %w", err)
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	var transport notification.Transport
	if cfg.Mail.Enabled() {
		smtp, err := mail.NewSMTPTransport(mail.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			Timeout:  cfg.Mail.Timeout,
		})
		if err != nil {
			return err
		}
		transport = smtp
	} else {
		logger.Warn("mail is not configured; notifications will be skipped")
	}
	dispatcher := notification.NewDispatcher(transport, cfg.Mail.From,
		notification.WithLogger(logger),
		notification.WithBrandLogo(cfg.Mail.BrandLogoURL),
	)

	tokens, err := auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	photos := storage.NewCloudinaryStore(storage.CloudinaryConfig{
		BaseURL:   cfg.Storage.BaseURL,
		CloudName: cfg.Storage.CloudName,
		APIKey:    cfg.Storage.APIKey,
		APISecret: cfg.Storage.APISecret,
		Folder:    cfg.Storage.Folder,
		Timeout:   cfg.Storage.Timeout,
	})

	accountSvc := account.NewService(account.Dependencies{
		Repo:     userRepo,
		Hasher:   auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Tokens:   tokens,
		Photos:   photos,
		Notifier: dispatcher,
		Tx:       txManager,
		Logger:   logger,
	})
	applicationSvc := application.NewService(application.Dependencies{
		Repo:       applicationRepo,
		Jobs:       jobRepo,
		Companies:  companyRepo,
		Applicants: userRepo,
		Notifier:   dispatcher,
		Policy:     application.PolicyFor(cfg.Applications.StrictTransitions),
		Tx:         txManager,
		Logger:     logger,
	})
	companySvc := company.NewService(companyRepo, txManager)
	jobSvc := job.NewService(jobRepo, txManager)

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		CookieName:     cfg.Auth.CookieName,
		Verifier:       tokens,
		Health:         func(ctx context.Context) error { return pg.Ping(ctx, dbPool) },
		Logger:         logger,
	}, handler.Handlers{
		Users: handler.NewUserHandler(accountSvc, handler.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Domain: cfg.Auth.CookieDomain,
			Secure: cfg.Auth.CookieSecure,
			MaxAge: cfg.Auth.TokenTTL,
		}, logger),
		Applications: handler.NewApplicationHandler(applicationSvc, logger),
		Catalog:      handler.NewCatalogHandler(companySvc, jobSvc, logger),
	})

	srv := server.New(server.Options{
		HTTPAddr: cfg.Server.HTTPAddr,
		GRPCAddr: cfg.Server.GRPCAddr,
		Handler:  router,
		Logger:   logger,
	})
	srv.SetServing(true)

	return srv.Run(ctx)
}
