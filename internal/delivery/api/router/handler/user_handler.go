package handler

import (
	"hbnb/internal/delivery/api/response"
	"hbnb/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
}

// UserHandler serves /users. Responses never include the password hash.
type UserHandler struct {
	userUC usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
	}
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Email     *string `json:"email" validate:"required"`
	Password  *string `json:"password" validate:"required"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userUC.List(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, views(users))
}

func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.OK(c, view(user))
}

func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if _, err := bindRequest(c, &req); err != nil {
		return err
	}

	user, err := h.userUC.Create(c.Request().Context(), usecase.CreateUserInput{
		Email:     *req.Email,
		Password:  *req.Password,
		FirstName: deref(req.FirstName),
		LastName:  deref(req.LastName),
	})
	if err != nil {
		return err
	}

	return response.Created(c, view(user))
}

func (h *UserHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.userUC.Get(ctx, c.Param("id")); err != nil {
		return err
	}
	attrs, err := bindAttributes(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.Update(ctx, c.Param("id"), attrs)
	if err != nil {
		return err
	}

	return response.OK(c, view(user))
}

func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return response.OK(c, map[string]any{})
}
