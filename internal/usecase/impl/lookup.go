package impl

import (
	"context"

	"hbnb/internal/domain/entity"
	domainerrors "hbnb/internal/domain/errors"
	"hbnb/internal/domain/repository"
	"hbnb/internal/usecase"

	"github.com/pkg/errors"
)

// findRecord returns the live record of type T with the given id or ErrNotFound.
func findRecord[T entity.Record](ctx context.Context, store repository.Storage, id string) (T, error) {
	rec, ok, err := repository.GetAs[T](ctx, store, id)
	if err != nil {
		return rec, domainerrors.NewStorageError(errors.WithStack(err), "get "+entity.KeyOf(rec.Class(), id))
	}
	if !ok {
		return rec, domainerrors.ErrNotFound.WrapMessage(entity.KeyOf(rec.Class(), id))
	}

	return rec, nil
}

func listRecords[T entity.Record](ctx context.Context, store repository.Storage) ([]T, error) {
	records, err := repository.AllAs[T](ctx, store)
	if err != nil {
		return nil, domainerrors.NewStorageError(errors.WithStack(err), "list")
	}

	return records, nil
}

// patchRecord saves a copy of r with attrs applied, skipping the ignored
// keys, and returns that copy. r itself is never modified.
func patchRecord[T entity.Record](ctx context.Context, records usecase.RecordService, r T, attrs usecase.Attributes, ignored ...string) (T, error) {
	var zero T

	updated, err := entity.Clone(r)
	if err != nil {
		return zero, errors.WithStack(err)
	}
	if err := entity.Patch(updated, attrs, ignored...); err != nil {
		return zero, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}
	if err := records.Update(ctx, updated); err != nil {
		return zero, err
	}

	return updated, nil
}

// deleteRecord removes the record of type T with the given id.
func deleteRecord[T entity.Record](ctx context.Context, store repository.Storage, records usecase.RecordService, id string) error {
	rec, err := findRecord[T](ctx, store, id)
	if err != nil {
		return err
	}

	return records.Delete(ctx, rec)
}
