package impl

import (
	"context"

	"hbnb/internal/domain/entity"
	domainerrors "hbnb/internal/domain/errors"
	"hbnb/internal/domain/relation"
	"hbnb/internal/domain/repository"
	"hbnb/internal/usecase"

	"github.com/pkg/errors"
)

type placeService struct {
	store   repository.Storage
	records usecase.RecordService
}

// NewPlaceService creates a new place service instance
func NewPlaceService(store repository.Storage, records usecase.RecordService) usecase.PlaceUsecase {
	return &placeService{store: store, records: records}
}

func (s *placeService) ListByCity(ctx context.Context, cityID string) ([]*entity.Place, error) {
	city, err := findRecord[*entity.City](ctx, s.store, cityID)
	if err != nil {
		return nil, err
	}

	places, err := relation.CityPlaces(ctx, s.store, city)
	if err != nil {
		return nil, domainerrors.NewStorageError(errors.WithStack(err), "places of "+entity.Key(city))
	}

	return places, nil
}

func (s *placeService) Get(ctx context.Context, id string) (*entity.Place, error) {
	return findRecord[*entity.Place](ctx, s.store, id)
}

func (s *placeService) Create(ctx context.Context, input usecase.CreatePlaceInput) (*entity.Place, error) {
	city, err := findRecord[*entity.City](ctx, s.store, input.CityID)
	if err != nil {
		return nil, err
	}
	user, err := findRecord[*entity.User](ctx, s.store, input.UserID)
	if err != nil {
		return nil, err
	}

	place := entity.NewPlace(city.ID, user.ID, input.Name)
	if err := entity.Patch(place, input.Attributes, "city_id", "user_id", "name"); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	if err := s.records.Create(ctx, place); err != nil {
		return nil, err
	}

	return place, nil
}

func (s *placeService) Update(ctx context.Context, id string, attrs usecase.Attributes) (*entity.Place, error) {
	place, err := findRecord[*entity.Place](ctx, s.store, id)
	if err != nil {
		return nil, err
	}

	return patchRecord(ctx, s.records, place, attrs, "user_id", "city_id")
}

func (s *placeService) Delete(ctx context.Context, id string) error {
	return deleteRecord[*entity.Place](ctx, s.store, s.records, id)
}

type reviewService struct {
	store   repository.Storage
	records usecase.RecordService
}

// NewReviewService creates a new review service instance
func NewReviewService(store repository.Storage, records usecase.RecordService) usecase.ReviewUsecase {
	return &reviewService{store: store, records: records}
}

func (s *reviewService) ListByPlace(ctx context.Context, placeID string) ([]*entity.Review, error) {
	place, err := findRecord[*entity.Place](ctx, s.store, placeID)
	if err != nil {
		return nil, err
	}

	reviews, err := relation.PlaceReviews(ctx, s.store, place)
	if err != nil {
		return nil, domainerrors.NewStorageError(errors.WithStack(err), "reviews of "+entity.Key(place))
	}

	return reviews, nil
}

func (s *reviewService) Get(ctx context.Context, id string) (*entity.Review, error) {
	return findRecord[*entity.Review](ctx, s.store, id)
}

func (s *reviewService) Create(ctx context.Context, input usecase.CreateReviewInput) (*entity.Review, error) {
	place, err := findRecord[*entity.Place](ctx, s.store, input.PlaceID)
	if err != nil {
		return nil, err
	}
	user, err := findRecord[*entity.User](ctx, s.store, input.UserID)
	if err != nil {
		return nil, err
	}

	review := entity.NewReview(place.ID, user.ID, input.Text)
	if err := s.records.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewService) Update(ctx context.Context, id string, attrs usecase.Attributes) (*entity.Review, error) {
	review, err := findRecord[*entity.Review](ctx, s.store, id)
	if err != nil {
		return nil, err
	}

	return patchRecord(ctx, s.records, review, attrs, "user_id", "place_id")
}

func (s *reviewService) Delete(ctx context.Context, id string) error {
	return deleteRecord[*entity.Review](ctx, s.store, s.records, id)
}
