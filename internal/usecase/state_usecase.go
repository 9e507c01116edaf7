package usecase

import (
	"context"

	"hbnb/internal/domain/entity"
)

// StateUsecase defines state management.
type StateUsecase interface {
	List(ctx context.Context) ([]*entity.State, error)
	Get(ctx context.Context, id string) (*entity.State, error)
	Create(ctx context.Context, name string) (*entity.State, error)
	Update(ctx context.Context, id string, attrs Attributes) (*entity.State, error)
	Delete(ctx context.Context, id string) error
}

// CityUsecase defines city management. Cities are created under a state.
type CityUsecase interface {
	// ListByState returns the cities of a state, or ErrNotFound for an unknown state.
	ListByState(ctx context.Context, stateID string) ([]*entity.City, error)
	Get(ctx context.Context, id string) (*entity.City, error)
	Create(ctx context.Context, stateID, name string) (*entity.City, error)
	Update(ctx context.Context, id string, attrs Attributes) (*entity.City, error)
	Delete(ctx context.Context, id string) error
}

// AmenityUsecase defines amenity management.
type AmenityUsecase interface {
	List(ctx context.Context) ([]*entity.Amenity, error)
	Get(ctx context.Context, id string) (*entity.Amenity, error)
	Create(ctx context.Context, name string) (*entity.Amenity, error)
	Update(ctx context.Context, id string, attrs Attributes) (*entity.Amenity, error)
	Delete(ctx context.Context, id string) error
}
