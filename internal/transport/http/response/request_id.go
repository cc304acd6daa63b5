package response

import (
	"net/http"

	appctx "github.com/trimarkity/auth-service/internal/pkg/context"
)

// RequestIDFromRequest returns the request id assigned by the middleware,
// or an empty string when none was set.
func RequestIDFromRequest(r *http.Request) string {
	return appctx.GetRequestID(r.Context())
}
