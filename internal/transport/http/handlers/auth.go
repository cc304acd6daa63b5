package handlers

import (
	"net/http"

	"github.com/trimarkity/auth-service/internal/application/auth"
	"github.com/trimarkity/auth-service/internal/transport/http/dto"
	"github.com/trimarkity/auth-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc     *auth.Service
	baseURL BaseURLResolver
}

func NewAuthHandler(svc *auth.Service, baseURL BaseURLResolver) *AuthHandler {
	return &AuthHandler{svc: svc, baseURL: baseURL}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		response.WriteError(w, r, err)
		return
	}
	loginAttempts.WithLabelValues("success").Inc()
	response.OK(w, dto.NewSessionResponse(res.User, res.Token))
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Signup(r.Context(), auth.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.NewSessionResponse(res.User, res.Token))
}

// ForgotPassword always answers with the same generic message so callers
// cannot probe which addresses have accounts.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.RequestPasswordReset(r.Context(), req.Email, h.baseURL.Resolve(r)); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.MessageResponse{
		Message: "If an account with that email exists, a password reset link has been sent.",
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.MessageResponse{Message: "Password has been reset successfully."})
}
