package profile

import (
	"context"
	"encoding/json"
	"errors"

	"apibasics/internal/domain"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type Service struct {
	users UserRepositoryInterface
}

func NewService(users UserRepositoryInterface) *Service {
	return &Service{users: users}
}

func (s *Service) Get(ctx context.Context, userID string) (*Response, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return toResponse(user)
}

// Update merges the provided fields into the stored profile.
// Preferences replace the stored blob wholesale; there is no per-key
// merge.
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (*Response, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Preferences != nil {
		raw, err := json.Marshal(req.Preferences)
		if err != nil {
			return nil, err
		}
		user.Preferences = string(raw)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return toResponse(user)
}

func toResponse(user *domain.User) (*Response, error) {
	prefs := map[string]any{}
	if user.Preferences != "" {
		if err := json.Unmarshal([]byte(user.Preferences), &prefs); err != nil {
			return nil, err
		}
	}

	return &Response{
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Bio:         user.Bio,
		Preferences: prefs,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}, nil
}
