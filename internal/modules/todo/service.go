package todo

import (
	"context"
	"errors"
	"strings"

	"apibasics/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TodoRepositoryInterface interface {
	Create(ctx context.Context, t *domain.Todo) error
	ListByUser(ctx context.Context, userID string) ([]domain.Todo, error)
	GetForUser(ctx context.Context, id, userID string) (*domain.Todo, error)
	Update(ctx context.Context, t *domain.Todo) error
	DeleteForUser(ctx context.Context, id, userID string) (bool, error)
}

type Service struct {
	todos TodoRepositoryInterface
}

func NewService(todos TodoRepositoryInterface) *Service {
	return &Service{todos: todos}
}

func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*domain.Todo, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrValidation
	}

	t := &domain.Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}

	if err := s.todos.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Todo, error) {
	return s.todos.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id, userID string) (*domain.Todo, error) {
	t, err := s.todos.GetForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, id, userID string, req UpdateRequest) (*domain.Todo, error) {
	t, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrValidation
		}
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}

	if err := s.todos.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	deleted, err := s.todos.DeleteForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTodoNotFound
	}
	return nil
}
