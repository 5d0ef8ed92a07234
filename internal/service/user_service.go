package service

import (
	"context"

	"auralearn/internal/domain"
	"auralearn/internal/dto"
)

// UserService defines user profile operations for authenticated callers.
type UserService interface {
	// GetUserProfile returns the session view of the given user.
	GetUserProfile(ctx context.Context, userID string) (*dto.SessionResponse, error)
}

type userServiceImpl struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo domain.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) GetUserProfile(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to fetch user profile", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user profile not found")
	}

	session := NewSessionResponse(user)
	return &session, nil
}
