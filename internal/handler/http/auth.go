package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	UserDetails(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authRepo auth.Repository
}

func NewAuthHandler(authRepo auth.Repository) AuthHandler {
	return &AuthHandlerImpl{authRepo: authRepo}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authRepo.Login(r.Context(), loginReq)
	if err != nil {
		slog.Warn("Login rejected", "username", loginReq.Username, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User logged in successfully", "username", loginReq.Username)
	response.SuccessWithMessage(w, "Login successful", tokenResponse)
}

// UserDetails implements AuthHandler.
func (a *AuthHandlerImpl) UserDetails(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		response.BadRequest(w, "Username is required", nil)
		return
	}

	details, err := a.authRepo.UserDetails(r.Context(), "", username)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, details)
}
