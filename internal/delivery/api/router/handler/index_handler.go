package handler

import (
	"hbnb/internal/delivery/api/response"
	"hbnb/internal/usecase"

	"github.com/labstack/echo/v4"
)

// IndexHandler serves the status and stats endpoints.
type IndexHandler struct {
	stats usecase.StatsUsecase
}

// NewIndexHandler creates a new IndexHandler instance
func NewIndexHandler(stats usecase.StatsUsecase) *IndexHandler {
	return &IndexHandler{stats: stats}
}

// Status reports that the API is up.
func (h *IndexHandler) Status(c echo.Context) error {
	return response.OK(c, map[string]string{"status": "OK"})
}

// Stats returns the number of records per collection.
func (h *IndexHandler) Stats(c echo.Context) error {
	counts, err := h.stats.Counts(c.Request().Context())
	if err != nil {
		return err
	}

	return response.OK(c, counts)
}
