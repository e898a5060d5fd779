package services

import (
	"context"
	"fmt"
	"log/slog"

	"seatwell/internal/status"
	"seatwell/internal/store"
	"seatwell/models"
)

// AuthService handles login and user accounts. Passwords are stored and
// compared in plaintext.
type AuthService struct {
	store  *store.Store
	logger *slog.Logger
}

func NewAuthService(s *store.Store, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{store: s, logger: logger}
}

// Login looks the user up by email and compares the password literally.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (models.PublicUser, error) {
	user, ok := s.store.GetUserByEmail(req.Email)
	if !ok || user.Password != req.Password {
		s.logger.Info("Login rejected", "email", req.Email)
		return models.PublicUser{}, status.ErrInvalidCredentials
	}
	return user.Public(), nil
}

func (s *AuthService) Register(ctx context.Context, req models.CreateUserRequest) (models.PublicUser, error) {
	if _, taken := s.store.GetUserByUsername(req.Username); taken {
		return models.PublicUser{}, fmt.Errorf("username %q: %w", req.Username, status.ErrDuplicateUser)
	}
	if _, taken := s.store.GetUserByEmail(req.Email); taken {
		return models.PublicUser{}, fmt.Errorf("email %q: %w", req.Email, status.ErrDuplicateUser)
	}

	user := s.store.CreateUser(req.User())
	s.logger.Info("User registered", "userID", user.ID, "type", user.Type)
	return user.Public(), nil
}

func (s *AuthService) Users(ctx context.Context) []models.PublicUser {
	users := s.store.AllUsers()
	public := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public
}
