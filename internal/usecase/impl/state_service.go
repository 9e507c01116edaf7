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

type stateService struct {
	store   repository.Storage
	records usecase.RecordService
}

// NewStateService creates a new state service instance
func NewStateService(store repository.Storage, records usecase.RecordService) usecase.StateUsecase {
	return &stateService{store: store, records: records}
}

func (s *stateService) List(ctx context.Context) ([]*entity.State, error) {
	return listRecords[*entity.State](ctx, s.store)
}

func (s *stateService) Get(ctx context.Context, id string) (*entity.State, error) {
	return findRecord[*entity.State](ctx, s.store, id)
}

func (s *stateService) Create(ctx context.Context, name string) (*entity.State, error) {
	state := entity.NewState(name)
	if err := s.records.Create(ctx, state); err != nil {
		return nil, err
	}

	return state, nil
}

func (s *stateService) Update(ctx context.Context, id string, attrs usecase.Attributes) (*entity.State, error) {
	state, err := findRecord[*entity.State](ctx, s.store, id)
	if err != nil {
		return nil, err
	}

	return patchRecord(ctx, s.records, state, attrs)
}

func (s *stateService) Delete(ctx context.Context, id string) error {
	return deleteRecord[*entity.State](ctx, s.store, s.records, id)
}

type cityService struct {
	store   repository.Storage
	records usecase.RecordService
}

// NewCityService creates a new city service instance
func NewCityService(store repository.Storage, records usecase.RecordService) usecase.CityUsecase {
	return &cityService{store: store, records: records}
}

func (s *cityService) ListByState(ctx context.Context, stateID string) ([]*entity.City, error) {
	state, err := findRecord[*entity.State](ctx, s.store, stateID)
	if err != nil {
		return nil, err
	}

	cities, err := relation.StateCities(ctx, s.store, state)
	if err != nil {
		return nil, domainerrors.NewStorageError(errors.WithStack(err), "cities of "+entity.Key(state))
	}

	return cities, nil
}

func (s *cityService) Get(ctx context.Context, id string) (*entity.City, error) {
	return findRecord[*entity.City](ctx, s.store, id)
}

func (s *cityService) Create(ctx context.Context, stateID, name string) (*entity.City, error) {
	state, err := findRecord[*entity.State](ctx, s.store, stateID)
	if err != nil {
		return nil, err
	}

	city := entity.NewCity(state.ID, name)
	if err := s.records.Create(ctx, city); err != nil {
		return nil, err
	}

	return city, nil
}

func (s *cityService) Update(ctx context.Context, id string, attrs usecase.Attributes) (*entity.City, error) {
	city, err := findRecord[*entity.City](ctx, s.store, id)
	if err != nil {
		return nil, err
	}

	return patchRecord(ctx, s.records, city, attrs, "state_id")
}

func (s *cityService) Delete(ctx context.Context, id string) error {
	return deleteRecord[*entity.City](ctx, s.store, s.records, id)
}

type amenityService struct {
	store   repository.Storage
	records usecase.RecordService
}

// NewAmenityService creates a new amenity service instance
func NewAmenityService(store repository.Storage, records usecase.RecordService) usecase.AmenityUsecase {
	return &amenityService{store: store, records: records}
}

func (s *amenityService) List(ctx context.Context) ([]*entity.Amenity, error) {
	return listRecords[*entity.Amenity](ctx, s.store)
}

func (s *amenityService) Get(ctx context.Context, id string) (*entity.Amenity, error) {
	return findRecord[*entity.Amenity](ctx, s.store, id)
}

func (s *amenityService) Create(ctx context.Context, name string) (*entity.Amenity, error) {
	amenity := entity.NewAmenity(name)
	if err := s.records.Create(ctx, amenity); err != nil {
		return nil, err
	}

	return amenity, nil
}

func (s *amenityService) Update(ctx context.Context, id string, attrs usecase.Attributes) (*entity.Amenity, error) {
	amenity, err := findRecord[*entity.Amenity](ctx, s.store, id)
	if err != nil {
		return nil, err
	}

	return patchRecord(ctx, s.records, amenity, attrs)
}

func (s *amenityService) Delete(ctx context.Context, id string) error {
	return deleteRecord[*entity.Amenity](ctx, s.store, s.records, id)
}
