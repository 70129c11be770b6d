package service

import (
	"context"
	"errors"

	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository"

	"github.com/google/uuid"
)

type UserService interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListCustomers(ctx context.Context, search string) ([]model.UserResponse, error)
	ListClerks(ctx context.Context, boutiqueID *uuid.UUID) ([]model.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListCustomers backs the clerk's customer picker when recording a sale.
func (s *userService) ListCustomers(ctx context.Context, search string) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx, repository.UserFilter{Role: model.RoleCustomer, Search: search})
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

func (s *userService) ListClerks(ctx context.Context, boutiqueID *uuid.UUID) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx, repository.UserFilter{Role: model.RoleClerk, BoutiqueID: boutiqueID})
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

func toResponses(users []model.User) []model.UserResponse {
	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, users[i].ToResponse())
	}
	return responses
}
