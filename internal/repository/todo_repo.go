package repository

import (
	"context"

	"apibasics/internal/domain"

	"gorm.io/gorm"
)

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, t *domain.Todo) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]domain.Todo, error) {
	var todos []domain.Todo
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// GetForUser filters by both the todo id and the owner. A todo that
// belongs to another user comes back as gorm.ErrRecordNotFound.
func (r *TodoRepository) GetForUser(ctx context.Context, id, userID string) (*domain.Todo, error) {
	var t domain.Todo
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TodoRepository) Update(ctx context.Context, t *domain.Todo) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// DeleteForUser reports whether a row was actually removed so the
// service can answer 404 for todos the caller does not own.
func (r *TodoRepository) DeleteForUser(ctx context.Context, id, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Todo{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
