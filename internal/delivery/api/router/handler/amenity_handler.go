package handler

import (
	"hbnb/internal/delivery/api/response"
	"hbnb/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AmenityHandler serves /amenities.
type AmenityHandler struct {
	amenityUC usecase.AmenityUsecase
}

// NewAmenityHandler creates a new AmenityHandler instance
func NewAmenityHandler(amenityUC usecase.AmenityUsecase) *AmenityHandler {
	return &AmenityHandler{amenityUC: amenityUC}
}

func (h *AmenityHandler) List(c echo.Context) error {
	amenities, err := h.amenityUC.List(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, views(amenities))
}

func (h *AmenityHandler) Get(c echo.Context) error {
	amenity, err := h.amenityUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.OK(c, view(amenity))
}

func (h *AmenityHandler) Create(c echo.Context) error {
	var req NamedRequest
	if _, err := bindRequest(c, &req); err != nil {
		return err
	}

	amenity, err := h.amenityUC.Create(c.Request().Context(), *req.Name)
	if err != nil {
		return err
	}

	return response.Created(c, view(amenity))
}

func (h *AmenityHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.amenityUC.Get(ctx, c.Param("id")); err != nil {
		return err
	}
	attrs, err := bindAttributes(c)
	if err != nil {
		return err
	}

	amenity, err := h.amenityUC.Update(ctx, c.Param("id"), attrs)
	if err != nil {
		return err
	}

	return response.OK(c, view(amenity))
}

func (h *AmenityHandler) Delete(c echo.Context) error {
	if err := h.amenityUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return response.OK(c, map[string]any{})
}
