package impl

import (
	"context"

	"hbnb/internal/domain/entity"
	domainerrors "hbnb/internal/domain/errors"
	"hbnb/internal/domain/repository"
	"hbnb/internal/usecase"

	"github.com/pkg/errors"
)

// collections names each class in the stats payload.
//
//nolint:gochecknoglobals
var collections = map[entity.Class]string{
	entity.ClassAmenity: "amenities",
	entity.ClassCity:    "cities",
	entity.ClassPlace:   "places",
	entity.ClassReview:  "reviews",
	entity.ClassState:   "states",
	entity.ClassUser:    "users",
}

type statsService struct {
	store repository.Storage
}

// NewStatsService creates a new stats service instance
func NewStatsService(store repository.Storage) usecase.StatsUsecase {
	return &statsService{store: store}
}

func (s *statsService) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(collections))
	for class, name := range collections {
		n, err := s.store.Count(ctx, class)
		if err != nil {
			return nil, domainerrors.NewStorageError(errors.WithStack(err), "count "+class.String())
		}
		counts[name] = n
	}

	return counts, nil
}
