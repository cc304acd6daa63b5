package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/trimarkity/auth-service/internal/application/auth"
	"github.com/trimarkity/auth-service/internal/domain"
	"github.com/trimarkity/auth-service/internal/transport/http/response"
)

type claimsKey struct{}

// TokenVerifier checks a bearer token and returns the session claims it carries.
type TokenVerifier interface {
	VerifySession(token string) (auth.SessionClaims, error)
}

// Auth requires a valid bearer token and stores its claims in the request
// context for downstream handlers.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				response.WriteError(w, r, domain.ErrTokenMissing())
				return
			}
			claims, err := verifier.VerifySession(raw)
			if err != nil {
				response.WriteError(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose session role is not admin.
// Must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			response.WriteError(w, r, domain.ErrTokenMissing())
			return
		}
		if claims.Role != string(domain.RoleAdmin) {
			response.WriteError(w, r, domain.ErrInsufficientRole(string(domain.RoleAdmin)))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext returns the session claims stored by Auth.
func ClaimsFromContext(ctx context.Context) (auth.SessionClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(auth.SessionClaims)
	return claims, ok
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
