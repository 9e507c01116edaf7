// Package relation derives one-to-many associations between records.
//
// Nothing here is stored or cached: every accessor scans the live collection
// of the child variant and keeps the records whose reference field equals the
// parent's id. Cost is linear in the number of child records per call.
package relation

import (
	"context"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
)

// Children returns every T whose reference, as read by ref, equals parentID.
func Children[T entity.Record](ctx context.Context, store repository.Storage, parentID string, ref func(T) string) ([]T, error) {
	all, err := repository.AllAs[T](ctx, store)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0)
	for _, child := range all {
		if ref(child) == parentID {
			out = append(out, child)
		}
	}

	return out, nil
}

// StateCities returns the cities of a state.
func StateCities(ctx context.Context, store repository.Storage, state *entity.State) ([]*entity.City, error) {
	return Children(ctx, store, state.ID, func(c *entity.City) string { return c.StateID })
}

// CityPlaces returns the places located in a city.
func CityPlaces(ctx context.Context, store repository.Storage, city *entity.City) ([]*entity.Place, error) {
	return Children(ctx, store, city.ID, func(p *entity.Place) string { return p.CityID })
}

// PlaceReviews returns the reviews written about a place.
func PlaceReviews(ctx context.Context, store repository.Storage, place *entity.Place) ([]*entity.Review, error) {
	return Children(ctx, store, place.ID, func(r *entity.Review) string { return r.PlaceID })
}

// UserPlaces returns the places owned by a user.
func UserPlaces(ctx context.Context, store repository.Storage, user *entity.User) ([]*entity.Place, error) {
	return Children(ctx, store, user.ID, func(p *entity.Place) string { return p.UserID })
}

// UserReviews returns the reviews written by a user.
func UserReviews(ctx context.Context, store repository.Storage, user *entity.User) ([]*entity.Review, error) {
	return Children(ctx, store, user.ID, func(r *entity.Review) string { return r.UserID })
}

// PlaceAmenities resolves the amenity ids linked to a place. Ids that no
// longer resolve to a live Amenity are skipped.
func PlaceAmenities(ctx context.Context, store repository.Storage, place *entity.Place) ([]*entity.Amenity, error) {
	out := make([]*entity.Amenity, 0, len(place.AmenityIDs))
	for _, id := range place.AmenityIDs {
		amenity, ok, err := repository.GetAs[*entity.Amenity](ctx, store, id)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, amenity)
		}
	}

	return out, nil
}
