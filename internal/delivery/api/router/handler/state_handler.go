package handler

import (
	"hbnb/internal/delivery/api/response"
	"hbnb/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StateHandlerParams holds dependencies for StateHandler, injected by Fx.
type StateHandlerParams struct {
	fx.In

	StateUC usecase.StateUsecase
	CityUC  usecase.CityUsecase
}

// StateHandler serves /states and the cities nested under a state.
type StateHandler struct {
	stateUC usecase.StateUsecase
	cityUC  usecase.CityUsecase
}

// NewStateHandler is the constructor for StateHandler
func NewStateHandler(params StateHandlerParams) *StateHandler {
	return &StateHandler{
		stateUC: params.StateUC,
		cityUC:  params.CityUC,
	}
}

// NamedRequest is the body of creating a record that only needs a name.
type NamedRequest struct {
	Name *string `json:"name" validate:"required"`
}

func (h *StateHandler) ListStates(c echo.Context) error {
	states, err := h.stateUC.List(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, views(states))
}

func (h *StateHandler) GetState(c echo.Context) error {
	state, err := h.stateUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.OK(c, view(state))
}

func (h *StateHandler) CreateState(c echo.Context) error {
	var req NamedRequest
	if _, err := bindRequest(c, &req); err != nil {
		return err
	}

	state, err := h.stateUC.Create(c.Request().Context(), *req.Name)
	if err != nil {
		return err
	}

	return response.Created(c, view(state))
}

func (h *StateHandler) UpdateState(c echo.Context) error {
	ctx := c.Request().Context()

	// Unknown ids are reported before body problems.
	if _, err := h.stateUC.Get(ctx, c.Param("id")); err != nil {
		return err
	}
	attrs, err := bindAttributes(c)
	if err != nil {
		return err
	}

	state, err := h.stateUC.Update(ctx, c.Param("id"), attrs)
	if err != nil {
		return err
	}

	return response.OK(c, view(state))
}

func (h *StateHandler) DeleteState(c echo.Context) error {
	if err := h.stateUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return response.OK(c, map[string]any{})
}

func (h *StateHandler) ListCities(c echo.Context) error {
	cities, err := h.cityUC.ListByState(c.Request().Context(), c.Param("state_id"))
	if err != nil {
		return err
	}

	return response.OK(c, views(cities))
}

func (h *StateHandler) CreateCity(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.stateUC.Get(ctx, c.Param("state_id")); err != nil {
		return err
	}
	var req NamedRequest
	if _, err := bindRequest(c, &req); err != nil {
		return err
	}

	city, err := h.cityUC.Create(ctx, c.Param("state_id"), *req.Name)
	if err != nil {
		return err
	}

	return response.Created(c, view(city))
}

func (h *StateHandler) GetCity(c echo.Context) error {
	city, err := h.cityUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return response.OK(c, view(city))
}

func (h *StateHandler) UpdateCity(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.cityUC.Get(ctx, c.Param("id")); err != nil {
		return err
	}
	attrs, err := bindAttributes(c)
	if err != nil {
		return err
	}

	city, err := h.cityUC.Update(ctx, c.Param("id"), attrs)
	if err != nil {
		return err
	}

	return response.OK(c, view(city))
}

func (h *StateHandler) DeleteCity(c echo.Context) error {
	if err := h.cityUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return response.OK(c, map[string]any{})
}
