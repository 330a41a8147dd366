package repository

import (
	"context"

	"github.com/adilzhanb/taskhub/internal/domain"
)

type UserRepository interface {
	// Create persists the user. Returns domain.ErrEmailTaken if the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound if no user has this email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
