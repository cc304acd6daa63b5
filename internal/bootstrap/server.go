package bootstrap

import (
	"context"
	"net/http"

	"github.com/trimarkity/auth-service/internal/config"
)

// NewServer loads configuration, wires the dependency graph and returns a
// ready-to-listen HTTP server plus the cleanup releasing its resources.
func NewServer() (*http.Server, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	built, err := Build(context.Background(), cfg, Deps{})
	if err != nil {
		return nil, nil, err
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      built.Handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
	return srv, built.Cleanup, nil
}
