package usecase

import (
	"context"

	"hbnb/internal/domain/entity"
)

// CreatePlaceInput defines the data required to create a place.
// Attributes may set the optional fields (description, prices, coordinates...).
type CreatePlaceInput struct {
	CityID     string
	UserID     string
	Name       string
	Attributes Attributes
}

// CreateReviewInput defines the data required to create a review.
type CreateReviewInput struct {
	PlaceID string
	UserID  string
	Text    string
}

// PlaceUsecase defines place management.
type PlaceUsecase interface {
	// ListByCity returns the places of a city, or ErrNotFound for an unknown city.
	ListByCity(ctx context.Context, cityID string) ([]*entity.Place, error)
	Get(ctx context.Context, id string) (*entity.Place, error)
	// Create checks that the city and then the user exist.
	Create(ctx context.Context, input CreatePlaceInput) (*entity.Place, error)
	Update(ctx context.Context, id string, attrs Attributes) (*entity.Place, error)
	Delete(ctx context.Context, id string) error
}

// ReviewUsecase defines review management.
type ReviewUsecase interface {
	// ListByPlace returns the reviews of a place, or ErrNotFound for an unknown place.
	ListByPlace(ctx context.Context, placeID string) ([]*entity.Review, error)
	Get(ctx context.Context, id string) (*entity.Review, error)
	// Create checks that the place and then the user exist.
	Create(ctx context.Context, input CreateReviewInput) (*entity.Review, error)
	Update(ctx context.Context, id string, attrs Attributes) (*entity.Review, error)
	Delete(ctx context.Context, id string) error
}

// PlaceAmenityUsecase manages the amenities linked to a place.
type PlaceAmenityUsecase interface {
	List(ctx context.Context, placeID string) ([]*entity.Amenity, error)
	// Link attaches the amenity. created is false if it was already linked.
	Link(ctx context.Context, placeID, amenityID string) (amenity *entity.Amenity, created bool, err error)
	// Unlink detaches the amenity, or returns ErrNotFound if it was not linked.
	Unlink(ctx context.Context, placeID, amenityID string) error
}

// StatsUsecase reports store-wide figures.
type StatsUsecase interface {
	// Counts returns the number of records per collection name (e.g. "states").
	Counts(ctx context.Context) (map[string]int, error)
}
