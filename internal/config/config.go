package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr string
	// Auth / Security
	JWTSecret       string
	JWTIssuer       string
	SessionTokenTTL time.Duration
	ResetTokenTTL   time.Duration

	// Infrastructure
	DBAddr    string
	DBMigrate bool
	RedisAddr string
	RedisPass string
	RedisDB   int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Reset-link base URL resolution (tried in order; request headers and the
	// production fallback fill in the rest).
	AppBaseURL    string
	PublicSiteURL string
	DeployURL     string

	// Mail
	MailTransport string // smtp / amqp / log
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPFrom      string
	RabbitURL     string
	RabbitEVXName string
}

func Load() (*Config, error) {
	// .env is a dev convenience; real deployments set the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}
	cfg.JWTIssuer = getEnv("JWT_ISSUER", "trimarkity-auth")

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}
	cfg.DBMigrate = getBool("DB_MIGRATE", true)

	// optional with defaults
	ttl, err := getDuration("SESSION_TOKEN_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTokenTTL = ttl

	rtl, err := getDuration("RESET_TOKEN_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.ResetTokenTTL = rtl

	// Redis is optional: without it rate limiting is disabled (fail-open).
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPass = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB, err = getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	// Reset-link base URL sources.
	cfg.AppBaseURL = os.Getenv("APP_BASE_URL")
	cfg.PublicSiteURL = os.Getenv("PUBLIC_SITE_URL")
	cfg.DeployURL = os.Getenv("DEPLOY_URL")

	// Mail delivery. "log" keeps the service usable without SMTP or a broker.
	cfg.MailTransport = getEnv("MAIL_TRANSPORT", "log")
	switch cfg.MailTransport {
	case "smtp":
		cfg.SMTPHost = os.Getenv("SMTP_HOST")
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("missing required env var: SMTP_HOST")
		}
		cfg.SMTPPort, err = getInt("SMTP_PORT", 587)
		if err != nil {
			return nil, err
		}
		cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
		cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
		cfg.SMTPFrom = getEnv("SMTP_FROM_EMAIL", "noreply@trimarkity.com")
	case "amqp":
		cfg.RabbitURL = os.Getenv("RABBIT_URL")
		if cfg.RabbitURL == "" {
			return nil, fmt.Errorf("missing required env var: RABBIT_URL")
		}
		cfg.RabbitEVXName = getEnv("RABBIT_EXCHANGE", "trimarkity.events")
	case "log":
	default:
		return nil, fmt.Errorf("invalid MAIL_TRANSPORT: %q", cfg.MailTransport)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}
