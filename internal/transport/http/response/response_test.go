package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/trimarkity/auth-service/internal/domain"
)

func TestWriteError_KindToStatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrMissingField("email"), http.StatusBadRequest, "missing_field"},
		{domain.ErrInvalidCredentials(), http.StatusUnauthorized, "invalid_credentials"},
		{domain.ErrPasswordChangeNotRequired(), http.StatusForbidden, "password_change_not_required"},
		{domain.ErrUserNotFound(), http.StatusNotFound, "user_not_found"},
		{domain.ErrEmailAlreadyExists(), http.StatusConflict, "email_already_exists"},
		{domain.ErrRateLimited("login"), http.StatusTooManyRequests, "rate_limited"},
		{domain.ErrDBUnavailable(errors.New("down")), http.StatusServiceUnavailable, "db_unavailable"},
		{domain.ErrInternal(errors.New("boom")), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

		if rec.Code != tc.status {
			t.Fatalf("%v: status %d, want %d", tc.err, rec.Code, tc.status)
		}
		var body ErrorBody
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Error.Code != tc.code {
			t.Fatalf("%v: code %q, want %q", tc.err, body.Error.Code, tc.code)
		}
	}
}

func TestWriteError_NonDomainError_OpaqueInternal(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: secret table detail"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret table") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	var dst struct {
		Email string `json:"email"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com","surprise":1}`))

	err := DecodeJSON(req, &dst)
	if !domain.Is(err, "invalid_json") {
		t.Fatalf("expected invalid_json, got %v", err)
	}
}

func TestDecodeJSON_ValidBody(t *testing.T) {
	t.Parallel()

	var dst struct {
		Email string `json:"email"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com"}`))

	if err := DecodeJSON(req, &dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst.Email != "a@b.com" {
		t.Fatalf("got %q", dst.Email)
	}
}
