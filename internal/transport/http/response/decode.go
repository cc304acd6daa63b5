package response

import (
	"encoding/json"
	"net/http"

	"github.com/trimarkity/auth-service/internal/domain"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// DecodeJSON decodes a request body into dst, rejecting unknown fields
// and oversized payloads.
func DecodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidJSON(err)
	}
	return nil
}
