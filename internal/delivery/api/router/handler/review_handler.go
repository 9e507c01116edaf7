package handler

import (
	"hbnb/internal/delivery/api/response"
	"hbnb/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	PlaceUC  usecase.PlaceUsecase
	UserUC   usecase.UserUsecase
	ReviewUC usecase.ReviewUsecase
}

// ReviewHandler serves reviews and the reviews of a place.
type ReviewHandler struct {
	placeUC  usecase.PlaceUsecase
	userUC   usecase.UserUsecase
	reviewUC usecase.ReviewUsecase
}

// NewReviewHandler is the constructor for ReviewHandler
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		placeUC:  params.PlaceUC,
		userUC:   params.UserUC,
		reviewUC: params.ReviewUC,
	}
}

// CreateReviewRequest represents the request body for creating a review
type CreateReviewRequest struct {
	Text *string `json:"text" validate:"required"`
}

func (h *ReviewHandler) ListByPlace(c echo.Context) error {
	reviews, err := h.reviewUC.ListByPlace(c.Request().Context(), c.Param("place_id"))
	if err != nil {
		return err
	}

	return response.OK(c, views(reviews))
}

func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.reviewUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.OK(c, view(review))
}

// Create checks, in order: the place, the body, user_id, the user, text.
func (h *ReviewHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	place, err := h.placeUC.Get(ctx, c.Param("place_id"))
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

	var req CreateReviewRequest
	if err := decodeRequest(c, attrs, &req); err != nil {
		return err
	}

	review, err := h.reviewUC.Create(ctx, usecase.CreateReviewInput{
		PlaceID: place.ID,
		UserID:  *owner.UserID,
		Text:    *req.Text,
	})
	if err != nil {
		return err
	}

	return response.Created(c, view(review))
}

func (h *ReviewHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.reviewUC.Get(ctx, c.Param("id")); err != nil {
		return err
	}
	attrs, err := bindAttributes(c)
	if err != nil {
		return err
	}

	review, err := h.reviewUC.Update(ctx, c.Param("id"), attrs)
	if err != nil {
		return err
	}

	return response.OK(c, view(review))
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.reviewUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return response.OK(c, map[string]any{})
}
