package handlers

import (
	"net/http"

	"github.com/trimarkity/auth-service/internal/application/auth"
	"github.com/trimarkity/auth-service/internal/domain"
	"github.com/trimarkity/auth-service/internal/transport/http/dto"
	"github.com/trimarkity/auth-service/internal/transport/http/middleware"
	"github.com/trimarkity/auth-service/internal/transport/http/response"
)

type UsersHandler struct {
	svc *auth.Service
}

func NewUsersHandler(svc *auth.Service) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// ChangePassword handles the voluntary rotation: the caller proves the
// current password before the new one is installed.
func (h *UsersHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	var req dto.ChangePasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.ChangePassword(r.Context(), claims.Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewPasswordChangeResponse("Password changed successfully.", res.User, res.Token))
}

// SetupPassword completes the forced first-login rotation for accounts
// provisioned with a temporary password. No current password is required
// but the account must still be flagged for the change.
func (h *UsersHandler) SetupPassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	var req dto.SetupPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.SetupPassword(r.Context(), claims.Email, req.NewPassword)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewPasswordChangeResponse("Password set successfully.", res.User, res.Token))
}
