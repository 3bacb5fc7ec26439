package services

import (
	"context"
	"strings"

	"temple-backend/internal/apperr"
	"temple-backend/internal/auth"
	"temple-backend/internal/models"
	"temple-backend/internal/repositories"
)

var validRoles = map[string]bool{
	"admin":      true,
	"accountant": true,
	"viewer":     true,
}

// UserService handles signup and login. The first account ever created
// becomes admin regardless of the requested role.
type UserService struct {
	UserRepo   *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(userRepo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{UserRepo: userRepo, JWTManager: jwtManager}
}

func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || email == "" {
		return nil, apperr.Validation("name", "name and email are required")
	}
	if len(req.Password) < 8 {
		return nil, apperr.Validation("password", "must be at least 8 characters")
	}
	role := req.Role
	if role == "" {
		role = "viewer"
	}
	if !validRoles[role] {
		return nil, apperr.Validation("role", "unknown role %q", role)
	}

	existing, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("email %s is already registered", email)
	}

	count, err := s.UserRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		role = "admin"
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, apperr.Validation("credentials", "invalid email or password")
	}
	if !user.IsActive {
		return nil, apperr.State("account is deactivated")
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}
