package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	deliverycontext "hbnb/internal/delivery/context"
	"hbnb/internal/domain/service"
	"hbnb/internal/infra/auth"
	"hbnb/internal/infra/persistence/filestore"
	mockService "hbnb/internal/mocks/service"
	"hbnb/internal/usecase"

	"github.com/stretchr/testify/mock"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"
)

// serviceFixtures holds all test dependencies for the use-case services.
type serviceFixtures struct {
	ctx       context.Context
	store     *filestore.FileStorage
	publisher *mockService.MockEventPublisher
	records   usecase.RecordService
	states    usecase.StateUsecase
	cities    usecase.CityUsecase
	amenities usecase.AmenityUsecase
	users     usecase.UserUsecase
	places    usecase.PlaceUsecase
	reviews   usecase.ReviewUsecase
	links     usecase.PlaceAmenityUsecase
	stats     usecase.StatsUsecase
}

func createTestServices(t *testing.T) serviceFixtures {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := filestore.New(filestore.NewBlobMedium(bucket, ""), logger)
	publisher := mockService.NewMockEventPublisher(t)

	records := NewRecordService(RecordServiceParams{
		Store:     store,
		Publisher: publisher,
		Logger:    logger,
	})

	return serviceFixtures{
		ctx:       deliverycontext.WithRequestID(context.Background(), "req-test"),
		store:     store,
		publisher: publisher,
		records:   records,
		states:    NewStateService(store, records),
		cities:    NewCityService(store, records),
		amenities: NewAmenityService(store, records),
		users: NewUserService(UserServiceParams{
			Store:   store,
			Records: records,
			Hasher:  auth.NewBcryptHasherWithCost(bcrypt.MinCost),
			Logger:  logger,
		}),
		places:  NewPlaceService(store, records),
		reviews: NewReviewService(store, records),
		links:   NewPlaceAmenityService(store, records),
		stats:   NewStatsService(store),
	}
}

// acceptEvents lets any number of events through.
func (f serviceFixtures) acceptEvents() {
	f.publisher.EXPECT().
		PublishRecordEvent(mock.Anything, mock.AnythingOfType("*service.RecordEvent")).
		Return(nil).
		Maybe()
}

// expectEvent expects exactly one event of the given action and class.
func (f serviceFixtures) expectEvent(action, class string) *mockService.MockEventPublisher_PublishRecordEvent_Call {
	call := f.publisher.EXPECT().
		PublishRecordEvent(mock.Anything, mock.MatchedBy(func(e *service.RecordEvent) bool {
			return e.Action == action && e.Class == class
		})).
		Return(nil)
	call.Once()
	return call
}
