package repository

import (
	"context"

	"github.com/adilzhanb/taskhub/internal/domain"
)

// TaskRepository is owner-scoped: every lookup and mutation is additionally
// filtered by userID, so a task belonging to another user behaves exactly
// like a missing one (domain.ErrTaskNotFound).
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Task, error)
	// ListByUser returns the user's tasks newest-created-first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error
}
