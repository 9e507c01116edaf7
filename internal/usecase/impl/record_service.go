// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "hbnb/internal/delivery/context"
	"hbnb/internal/domain/entity"
	domainerrors "hbnb/internal/domain/errors"
	"hbnb/internal/domain/repository"
	"hbnb/internal/domain/service"
	"hbnb/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// recordService implements the RecordService interface.
type recordService struct {
	store     repository.Storage
	publisher service.EventPublisher
	logger    *slog.Logger
}

// RecordServiceParams holds dependencies for RecordService, injected by Fx.
type RecordServiceParams struct {
	fx.In

	Store     repository.Storage
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewRecordService is the constructor for recordService.
func NewRecordService(params RecordServiceParams) usecase.RecordService {
	return &recordService{
		store:     params.Store,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *recordService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *recordService) Create(ctx context.Context, r entity.Record) error {
	if err := srv.store.New(ctx, r); err != nil {
		return domainerrors.NewStorageError(errors.WithStack(err), "register "+entity.Key(r))
	}
	if err := srv.save(ctx); err != nil {
		return err
	}
	srv.publish(ctx, service.ActionCreated, r)

	return nil
}

// Update registers r in place of the live record with the same key and saves
// it. r must be a copy that no other request can see yet (see entity.Clone).
// If the save fails the previous record is put back.
func (srv *recordService) Update(ctx context.Context, r entity.Record) error {
	key := entity.Key(r)
	previous, found, err := srv.store.Get(ctx, r.Class(), r.Meta().ID)
	if err != nil {
		return domainerrors.NewStorageError(errors.WithStack(err), "get "+key)
	}

	r.Meta().Touch()
	if err := srv.store.New(ctx, r); err != nil {
		return domainerrors.NewStorageError(errors.WithStack(err), "register "+key)
	}
	if err := srv.save(ctx); err != nil {
		srv.restore(ctx, r, previous, found)

		return err
	}
	srv.publish(ctx, service.ActionUpdated, r)

	return nil
}

func (srv *recordService) Delete(ctx context.Context, r entity.Record) error {
	if err := srv.store.Delete(ctx, r); err != nil {
		return domainerrors.NewStorageError(errors.WithStack(err), "delete "+entity.Key(r))
	}
	if err := srv.save(ctx); err != nil {
		return err
	}
	srv.publish(ctx, service.ActionDeleted, r)

	return nil
}

func (srv *recordService) save(ctx context.Context) error {
	if err := srv.store.Save(ctx); err != nil {
		srv.log(ctx).Error("Failed to save storage", slog.Any("error", err))

		return domainerrors.NewStorageError(errors.WithStack(err), "save")
	}

	return nil
}

// restore puts back the record r replaced, or drops r if it replaced nothing.
func (srv *recordService) restore(ctx context.Context, r, previous entity.Record, found bool) {
	var err error
	if found && previous != r {
		err = srv.store.New(ctx, previous)
	} else if !found {
		err = srv.store.Delete(ctx, r)
	}
	if err != nil {
		srv.log(ctx).Error("Failed to restore record after failed save",
			slog.String("key", entity.Key(r)),
			slog.Any("error", err),
		)
	}
}

// publish announces a change that has already been saved. A publishing
// failure is logged and otherwise ignored.
func (srv *recordService) publish(ctx context.Context, action string, r entity.Record) {
	data := entity.Serialize(r)
	delete(data, "password")

	event := &service.RecordEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Action:    action,
		Class:     r.Class().String(),
		ID:        r.Meta().ID,
		Record:    data,
	}

	if err := srv.publisher.PublishRecordEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish record event",
			slog.String("action", action),
			slog.String("key", entity.Key(r)),
			slog.Any("error", err),
		)
	}
}
