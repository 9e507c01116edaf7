package handler

import (
	"net/http"

	"hbnb/internal/delivery/api/response"
	"hbnb/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PlaceHandlerParams holds dependencies for PlaceHandler, injected by Fx.
type PlaceHandlerParams struct {
	fx.In

	CityUC    usecase.CityUsecase
	UserUC    usecase.UserUsecase
	PlaceUC   usecase.PlaceUsecase
	AmenityUC usecase.PlaceAmenityUsecase
}

// PlaceHandler serves places, the places of a city and a place's amenities.
type PlaceHandler struct {
	cityUC    usecase.CityUsecase
	userUC    usecase.UserUsecase
	placeUC   usecase.PlaceUsecase
	amenityUC usecase.PlaceAmenityUsecase
}

// NewPlaceHandler is the constructor for PlaceHandler
func NewPlaceHandler(params PlaceHandlerParams) *PlaceHandler {
	return &PlaceHandler{
		cityUC:    params.CityUC,
		userUC:    params.UserUC,
		placeUC:   params.PlaceUC,
		amenityUC: params.AmenityUC,
	}
}

// OwnerRequest carries the author of a place or review.
type OwnerRequest struct {
	UserID *string `json:"user_id" validate:"required"`
}

// PlaceFields are the optional place attributes settable on create and update.
type PlaceFields struct {
	Description     *string  `json:"description,omitempty"`
	NumberRooms     *int     `json:"number_rooms,omitempty" validate:"omitempty,min=0"`
	NumberBathrooms *int     `json:"number_bathrooms,omitempty" validate:"omitempty,min=0"`
	MaxGuest        *int     `json:"max_guest,omitempty" validate:"omitempty,min=0"`
	PricePerNight   *int     `json:"price_per_night,omitempty" validate:"omitempty,min=0"`
	Latitude        *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude       *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
}

// CreatePlaceRequest represents the request body for creating a place
type CreatePlaceRequest struct {
	Name *string `json:"name" validate:"required"`
	PlaceFields
}

func (h *PlaceHandler) ListByCity(c echo.Context) error {
	places, err := h.placeUC.ListByCity(c.Request().Context(), c.Param("city_id"))
	if err != nil {
		return err
	}

	return response.OK(c, views(places))
}

func (h *PlaceHandler) Get(c echo.Context) error {
	place, err := h.placeUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.OK(c, view(place))
}

// Create checks, in order: the city, the body, user_id, the user, name.
func (h *PlaceHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	city, err := h.cityUC.Get(ctx, c.Param("city_id"))
	if err != nil {
		return err
	}

	var owner OwnerRequest
	attrs, err := bindRequest(c, &owner)
	if err != nil {
		return err
	}
	if _, err := h.userUC.Get(ctx, *owner.UserID); err != nil {
		return err
	}

	var req CreatePlaceRequest
	if err := decodeRequest(c, attrs, &req); err != nil {
		return err
	}

	place, err := h.placeUC.Create(ctx, usecase.CreatePlaceInput{
		CityID:     city.ID,
		UserID:     *owner.UserID,
		Name:       *req.Name,
		Attributes: attrs,
	})
	if err != nil {
		return err
	}

	return response.Created(c, view(place))
}

func (h *PlaceHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.placeUC.Get(ctx, c.Param("id")); err != nil {
		return err
	}
	var fields PlaceFields
	attrs, err := bindRequest(c, &fields)
	if err != nil {
		return err
	}

	place, err := h.placeUC.Update(ctx, c.Param("id"), attrs)
	if err != nil {
		return err
	}

	return response.OK(c, view(place))
}

func (h *PlaceHandler) Delete(c echo.Context) error {
	if err := h.placeUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return response.OK(c, map[string]any{})
}

func (h *PlaceHandler) ListAmenities(c echo.Context) error {
	amenities, err := h.amenityUC.List(c.Request().Context(), c.Param("place_id"))
	if err != nil {
		return err
	}

	return response.OK(c, views(amenities))
}

// LinkAmenity answers 201 for a new link and 200 if it already existed.
func (h *PlaceHandler) LinkAmenity(c echo.Context) error {
	amenity, created, err := h.amenityUC.Link(c.Request().Context(), c.Param("place_id"), c.Param("amenity_id"))
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	return response.Success(c, status, view(amenity))
}

func (h *PlaceHandler) UnlinkAmenity(c echo.Context) error {
	if err := h.amenityUC.Unlink(c.Request().Context(), c.Param("place_id"), c.Param("amenity_id")); err != nil {
		return err
	}

	return response.OK(c, map[string]any{})
}
