package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/trimarkity/auth-service/internal/application/auth"
	"github.com/trimarkity/auth-service/internal/config"
	"github.com/trimarkity/auth-service/internal/infrastructure/db/postgres"
	"github.com/trimarkity/auth-service/internal/infrastructure/email"
	"github.com/trimarkity/auth-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/trimarkity/auth-service/internal/infrastructure/redis"
	"github.com/trimarkity/auth-service/internal/infrastructure/security"
	httptransport "github.com/trimarkity/auth-service/internal/transport/http"
	"github.com/trimarkity/auth-service/internal/transport/http/handlers"
)

// Deps lets tests and alternative entrypoints swap infrastructure pieces;
// zero values mean "build the real thing from config".
type Deps struct {
	DB     *sql.DB
	Mailer auth.Mailer
	Redis  *redis.Client
}

// Built is the result of wiring: the root HTTP handler plus a cleanup
// function that releases every opened resource in reverse order.
type Built struct {
	Handler http.Handler
	Cleanup func()
}

// Build wires configuration into a running dependency graph.
func Build(ctx context.Context, cfg *config.Config, deps Deps) (*Built, error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	db := deps.DB
	if db == nil {
		var err error
		db, err = config.NewDB(cfg.DBAddr)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		cleanups = append(cleanups, func() { _ = db.Close() })
	}

	if cfg.DBMigrate {
		if err := postgres.Migrate(db); err != nil {
			cleanup()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	users := postgres.NewUserStore(db)
	hasher := security.NewBcryptHasher(security.DefaultCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	mailer := deps.Mailer
	if mailer == nil {
		var err error
		mailer, err = buildMailer(cfg, &cleanups)
		if err != nil {
			cleanup()
			return nil, err
		}
	}

	// Redis is best effort: rate limiting degrades to fail-open without it.
	rdb := deps.Redis
	if rdb == nil && cfg.RedisAddr != "" {
		rdb = redis.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rdb.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, rate limiting disabled")
			_ = rdb.Close()
			rdb = nil
		} else {
			cleanups = append(cleanups, func() { _ = rdb.Close() })
		}
	}
	var limiter *redis.FixedWindowLimiter
	if rdb != nil {
		limiter = redis.NewFixedWindowLimiter(rdb)
	}

	svc := auth.NewService(users, hasher, signer, mailer, log.Logger, auth.Config{
		SessionTTL: cfg.SessionTokenTTL,
		ResetTTL:   cfg.ResetTokenTTL,
	})

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Auth:     svc,
		Verifier: signer,
		Limiter:  limiter,
		DB:       db,
		BaseURL: handlers.BaseURLConfig{
			AppBaseURL:    cfg.AppBaseURL,
			PublicSiteURL: cfg.PublicSiteURL,
			DeployURL:     cfg.DeployURL,
			Production:    cfg.Env == "prod",
		},
	})

	return &Built{Handler: handler, Cleanup: cleanup}, nil
}

func buildMailer(cfg *config.Config, cleanups *[]func()) (auth.Mailer, error) {
	switch cfg.MailTransport {
	case "smtp":
		return email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, log.Logger), nil
	case "amqp":
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		pub.SetExchange(cfg.RabbitEVXName)
		*cleanups = append(*cleanups, func() { _ = pub.Close() })
		return pub, nil
	default:
		return email.NewLogSender(log.Logger), nil
	}
}
