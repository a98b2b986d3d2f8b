package repository

import (
	"context"

	"clinicapi/internal/model"
)

type UserRepository interface {
	// Create inserts a user and returns its ID. ErrDuplicate when the email is taken.
	Create(ctx context.Context, u *model.User) (int64, error)
	// FindByEmail returns ErrNotFound for unknown emails.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
