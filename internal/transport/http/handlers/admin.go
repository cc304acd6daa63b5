package handlers

import (
	"net/http"

	"github.com/trimarkity/auth-service/internal/application/auth"
	"github.com/trimarkity/auth-service/internal/domain"
	"github.com/trimarkity/auth-service/internal/transport/http/dto"
	"github.com/trimarkity/auth-service/internal/transport/http/middleware"
	"github.com/trimarkity/auth-service/internal/transport/http/response"
)

type AdminHandler struct {
	svc *auth.Service
}

func NewAdminHandler(svc *auth.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// CreateUser provisions a team-member account under the calling admin.
// The generated temporary password appears in this response and nowhere
// else; it is never persisted in plain text or logged.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	var req dto.CreateUserRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.CreateUser(r.Context(), claims.UserID, auth.CreateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.CreateUserResponse{
		Credentials: dto.CreatedCredentials{
			UserID:       res.UserID,
			Email:        res.Email,
			TempPassword: res.TempPassword,
		},
		PasswordChangeRequired: true,
	})
}
