package middleware

import (
	"log/slog"

	deliverycontext "hbnb/internal/delivery/context"
	"hbnb/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UnitOfWorkMiddleware gives each request its own unit of work and closes
// it once the handler returns, panics included.
type UnitOfWorkMiddleware struct {
	store  repository.Storage
	logger *slog.Logger
}

// NewUnitOfWorkMiddleware creates a new unit-of-work middleware
func NewUnitOfWorkMiddleware(store repository.Storage, logger *slog.Logger) *UnitOfWorkMiddleware {
	return &UnitOfWorkMiddleware{
		store:  store,
		logger: logger,
	}
}

// Handle scopes the request context to a fresh unit id. Client supplied
// request ids are not trusted to be unique, so the unit id is generated.
func (m *UnitOfWorkMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := repository.WithUnitOfWork(c.Request().Context(), uuid.NewString())
		c.SetRequest(c.Request().WithContext(ctx))

		defer func() {
			if err := m.store.Close(ctx); err != nil {
				deliverycontext.GetLoggerOrDefault(ctx, m.logger).
					Warn("Failed to close unit of work", slog.Any("error", err))
			}
		}()

		return next(c)
	}
}
