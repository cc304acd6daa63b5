package handlers

import (
	"net/http"
	"strings"
)

// BaseURLResolver decides which origin password-reset links should point at.
type BaseURLResolver interface {
	Resolve(r *http.Request) string
}

// BaseURLConfig resolves the reset-link origin in precedence order:
// an explicitly configured app base URL, the public site URL, the
// forwarded proto/host headers of the request, the platform deploy URL,
// then an environment-dependent fallback.
type BaseURLConfig struct {
	AppBaseURL    string
	PublicSiteURL string
	DeployURL     string
	Production    bool
}

const productionSiteURL = "https://trimarkity.com"

func (c BaseURLConfig) Resolve(r *http.Request) string {
	if c.AppBaseURL != "" {
		return trimSlash(c.AppBaseURL)
	}
	if c.PublicSiteURL != "" {
		return trimSlash(c.PublicSiteURL)
	}
	if host := r.Header.Get("X-Forwarded-Host"); host != "" {
		proto := r.Header.Get("X-Forwarded-Proto")
		if proto == "" {
			proto = "https"
		}
		return proto + "://" + host
	}
	if c.DeployURL != "" {
		return "https://" + trimSlash(strings.TrimPrefix(c.DeployURL, "https://"))
	}
	if c.Production {
		return productionSiteURL
	}
	return "http://localhost:3000"
}

func trimSlash(s string) string {
	return strings.TrimRight(s, "/")
}
