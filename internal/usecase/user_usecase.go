package usecase

import (
	"context"

	"hbnb/internal/domain/entity"
)

// CreateUserInput defines the data required to create a user.
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserUsecase defines user management. Passwords are stored hashed.
type UserUsecase interface {
	List(ctx context.Context) ([]*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, input CreateUserInput) (*entity.User, error)
	// Update applies attrs; a new password is hashed before it is stored.
	Update(ctx context.Context, id string, attrs Attributes) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
