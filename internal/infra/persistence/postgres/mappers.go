package postgres

import (
	"slices"
	"time"

	"hbnb/internal/domain/entity"
	"hbnb/internal/infra/persistence/model"
)

// Rows come back in the connection's time zone; records always carry UTC.
func toBase(id string, createdAt, updatedAt time.Time) entity.Base {
	return entity.Base{
		ID:        id,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}
}

func fromState(s *entity.State) *model.StateModel {
	return &model.StateModel{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toState(m *model.StateModel) *entity.State {
	return &entity.State{
		Base: toBase(m.ID, m.CreatedAt, m.UpdatedAt),
		Name: m.Name,
	}
}

func fromCity(c *entity.City) *model.CityModel {
	return &model.CityModel{
		ID:        c.ID,
		StateID:   c.StateID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCity(m *model.CityModel) *entity.City {
	return &entity.City{
		Base:    toBase(m.ID, m.CreatedAt, m.UpdatedAt),
		Name:    m.Name,
		StateID: m.StateID,
	}
}

func fromAmenity(a *entity.Amenity) *model.AmenityModel {
	return &model.AmenityModel{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAmenity(m *model.AmenityModel) *entity.Amenity {
	return &entity.Amenity{
		Base: toBase(m.ID, m.CreatedAt, m.UpdatedAt),
		Name: m.Name,
	}
}

func fromUser(u *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUser(m *model.UserModel) *entity.User {
	return &entity.User{
		Base:      toBase(m.ID, m.CreatedAt, m.UpdatedAt),
		Email:     m.Email,
		Password:  m.Password,
		FirstName: m.FirstName,
		LastName:  m.LastName,
	}
}

func fromPlace(p *entity.Place) *model.PlaceModel {
	amenityIDs := slices.Clone(p.AmenityIDs)
	if amenityIDs == nil {
		amenityIDs = []string{}
	}

	return &model.PlaceModel{
		ID:              p.ID,
		CityID:          p.CityID,
		UserID:          p.UserID,
		Name:            p.Name,
		Description:     p.Description,
		NumberRooms:     p.NumberRooms,
		NumberBathrooms: p.NumberBathrooms,
		MaxGuest:        p.MaxGuest,
		PricePerNight:   p.PricePerNight,
		Latitude:        p.Latitude,
		Longitude:       p.Longitude,
		AmenityIDs:      amenityIDs,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toPlace(m *model.PlaceModel) *entity.Place {
	amenityIDs := []string(m.AmenityIDs)
	if amenityIDs == nil {
		amenityIDs = []string{}
	}

	return &entity.Place{
		Base:            toBase(m.ID, m.CreatedAt, m.UpdatedAt),
		CityID:          m.CityID,
		UserID:          m.UserID,
		Name:            m.Name,
		Description:     m.Description,
		NumberRooms:     m.NumberRooms,
		NumberBathrooms: m.NumberBathrooms,
		MaxGuest:        m.MaxGuest,
		PricePerNight:   m.PricePerNight,
		Latitude:        m.Latitude,
		Longitude:       m.Longitude,
		AmenityIDs:      amenityIDs,
	}
}

func fromReview(r *entity.Review) *model.ReviewModel {
	return &model.ReviewModel{
		ID:        r.ID,
		PlaceID:   r.PlaceID,
		UserID:    r.UserID,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toReview(m *model.ReviewModel) *entity.Review {
	return &entity.Review{
		Base:    toBase(m.ID, m.CreatedAt, m.UpdatedAt),
		PlaceID: m.PlaceID,
		UserID:  m.UserID,
		Text:    m.Text,
	}
}
