package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository"
	"perfume-boutique-ws/pkg/jwt"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Role       model.Role         `json:"role"`
	Privileges []string           `json:"privileges"` // Flat privileges array for easy checking
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, logger *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 3. Generate JWT token
	privileges := model.PrivilegeCodes(user.Role.Privileges())
	token, err := s.tokens.GenerateToken(jwt.Claims{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       string(user.Role),
		BoutiqueID: user.BoutiqueID,
		Privileges: privileges,
	})
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.Warn("failed to record last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: privileges,
	}, nil
}
