package handlers

import (
	"log/slog"
	"net/http"

	"seatwell/internal/services"
	"seatwell/models"

	"github.com/pocketbase/pocketbase/core"
)

type AuthHandler struct {
	authService *services.AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService *services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login - POST /api/auth/login
func (h *AuthHandler) Login(e *core.RequestEvent) error {
	var req models.LoginRequest
	if err := bindAndValidate(e, &req, "Email and password are required"); err != nil {
		return err
	}

	user, err := h.authService.Login(e.Request.Context(), req)
	if err != nil {
		return apiError(h.logger, err, "User", "Internal server error")
	}

	return e.JSON(http.StatusOK, map[string]any{"user": user})
}

// ListUsers - GET /api/users, passwords are never included
func (h *AuthHandler) ListUsers(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, h.authService.Users(e.Request.Context()))
}

// Register - POST /api/users
func (h *AuthHandler) Register(e *core.RequestEvent) error {
	var req models.CreateUserRequest
	if err := bindAndValidate(e, &req, "Invalid user data"); err != nil {
		return err
	}

	user, err := h.authService.Register(e.Request.Context(), req)
	if err != nil {
		return apiError(h.logger, err, "User", "Failed to create user")
	}

	return e.JSON(http.StatusCreated, user)
}
