// Package router registers the /api/v1 routes.
package router

import (
	"hbnb/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// APIPrefix is the path every route is mounted under.
const APIPrefix = "/api/v1"

type RouterParams struct {
	fx.In

	IndexHandler   *handler.IndexHandler
	StateHandler   *handler.StateHandler
	AmenityHandler *handler.AmenityHandler
	UserHandler    *handler.UserHandler
	PlaceHandler   *handler.PlaceHandler
	ReviewHandler  *handler.ReviewHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	index     *handler.IndexHandler
	states    *handler.StateHandler
	amenities *handler.AmenityHandler
	users     *handler.UserHandler
	places    *handler.PlaceHandler
	reviews   *handler.ReviewHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		index:     params.IndexHandler,
		states:    params.StateHandler,
		amenities: params.AmenityHandler,
		users:     params.UserHandler,
		places:    params.PlaceHandler,
		reviews:   params.ReviewHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group(APIPrefix)

	api.GET("/status", r.index.Status)
	api.GET("/stats", r.index.Stats)

	states := api.Group("/states")
	{
		states.GET("", r.states.ListStates)
		states.POST("", r.states.CreateState)
		states.GET("/:id", r.states.GetState)
		states.PUT("/:id", r.states.UpdateState)
		states.DELETE("/:id", r.states.DeleteState)
		states.GET("/:state_id/cities", r.states.ListCities)
		states.POST("/:state_id/cities", r.states.CreateCity)
	}

	cities := api.Group("/cities")
	{
		cities.GET("/:id", r.states.GetCity)
		cities.PUT("/:id", r.states.UpdateCity)
		cities.DELETE("/:id", r.states.DeleteCity)
		cities.GET("/:city_id/places", r.places.ListByCity)
		cities.POST("/:city_id/places", r.places.Create)
	}

	amenities := api.Group("/amenities")
	{
		amenities.GET("", r.amenities.List)
		amenities.POST("", r.amenities.Create)
		amenities.GET("/:id", r.amenities.Get)
		amenities.PUT("/:id", r.amenities.Update)
		amenities.DELETE("/:id", r.amenities.Delete)
	}

	users := api.Group("/users")
	{
		users.GET("", r.users.List)
		users.POST("", r.users.Create)
		users.GET("/:id", r.users.Get)
		users.PUT("/:id", r.users.Update)
		users.DELETE("/:id", r.users.Delete)
	}

	places := api.Group("/places")
	{
		places.GET("/:id", r.places.Get)
		places.PUT("/:id", r.places.Update)
		places.DELETE("/:id", r.places.Delete)
		places.GET("/:place_id/reviews", r.reviews.ListByPlace)
		places.POST("/:place_id/reviews", r.reviews.Create)
		places.GET("/:place_id/amenities", r.places.ListAmenities)
		places.POST("/:place_id/amenities/:amenity_id", r.places.LinkAmenity)
		places.DELETE("/:place_id/amenities/:amenity_id", r.places.UnlinkAmenity)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("/:id", r.reviews.Get)
		reviews.PUT("/:id", r.reviews.Update)
		reviews.DELETE("/:id", r.reviews.Delete)
	}
}
