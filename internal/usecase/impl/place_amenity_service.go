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

type placeAmenityService struct {
	store   repository.Storage
	records usecase.RecordService
}

// NewPlaceAmenityService creates a new place amenity service instance
func NewPlaceAmenityService(store repository.Storage, records usecase.RecordService) usecase.PlaceAmenityUsecase {
	return &placeAmenityService{store: store, records: records}
}

func (s *placeAmenityService) List(ctx context.Context, placeID string) ([]*entity.Amenity, error) {
	place, err := findRecord[*entity.Place](ctx, s.store, placeID)
	if err != nil {
		return nil, err
	}

	amenities, err := relation.PlaceAmenities(ctx, s.store, place)
	if err != nil {
		return nil, domainerrors.NewStorageError(errors.WithStack(err), "amenities of "+entity.Key(place))
	}

	return amenities, nil
}

func (s *placeAmenityService) Link(ctx context.Context, placeID, amenityID string) (*entity.Amenity, bool, error) {
	place, amenity, err := s.pair(ctx, placeID, amenityID)
	if err != nil {
		return nil, false, err
	}
	if place.HasAmenity(amenity.ID) {
		return amenity, false, nil
	}

	updated, err := entity.Clone(place)
	if err != nil {
		return nil, false, errors.WithStack(err)
	}
	updated.LinkAmenity(amenity.ID)
	if err := s.records.Update(ctx, updated); err != nil {
		return nil, false, err
	}

	return amenity, true, nil
}

func (s *placeAmenityService) Unlink(ctx context.Context, placeID, amenityID string) error {
	place, amenity, err := s.pair(ctx, placeID, amenityID)
	if err != nil {
		return err
	}
	if !place.HasAmenity(amenity.ID) {
		return domainerrors.ErrNotFound.WrapMessage(entity.Key(amenity) + " is not linked to " + entity.Key(place))
	}

	updated, err := entity.Clone(place)
	if err != nil {
		return errors.WithStack(err)
	}
	updated.UnlinkAmenity(amenity.ID)

	return s.records.Update(ctx, updated)
}

func (s *placeAmenityService) pair(ctx context.Context, placeID, amenityID string) (*entity.Place, *entity.Amenity, error) {
	place, err := findRecord[*entity.Place](ctx, s.store, placeID)
	if err != nil {
		return nil, nil, err
	}
	amenity, err := findRecord[*entity.Amenity](ctx, s.store, amenityID)
	if err != nil {
		return nil, nil, err
	}

	return place, amenity, nil
}
