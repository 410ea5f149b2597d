package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"citizen_registry/internal/model"
	"citizen_registry/internal/repository"
	"citizen_registry/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService provides authentication for administrative accounts
type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	// SeedInitialAdmin creates the first admin account from
	// INITIAL_ADMIN_EMAIL / INITIAL_ADMIN_PASSWORD / INITIAL_ADMIN_NAME.
	// A no-op when the variables are unset or the account already exists.
	SeedInitialAdmin(ctx context.Context) error
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Login authenticates an account and returns it with a bearer token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials // account not found
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials // password mismatch
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

func (s *authService) SeedInitialAdmin(ctx context.Context) error {
	email := os.Getenv("INITIAL_ADMIN_EMAIL")
	password := os.Getenv("INITIAL_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check existing admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := os.Getenv("INITIAL_ADMIN_NAME")
	if name == "" {
		name = "Super Admin"
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to seed initial admin: %w", err)
	}

	log.Printf("INFO: Initial admin %s seeded via INITIAL_ADMIN_EMAIL.", email)
	return nil
}
