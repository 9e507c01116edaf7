package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hbnb/config"
	"hbnb/internal/delivery/api/router"
	"hbnb/internal/delivery/api/router/handler"
	"hbnb/internal/domain/entity"
	"hbnb/internal/infra/auth"
	"hbnb/internal/infra/persistence/filestore"
	mockService "hbnb/internal/mocks/service"
	"hbnb/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testAPI struct {
	t     *testing.T
	echo  *echo.Echo
	store *filestore.FileStorage
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := filestore.New(filestore.NewBlobMedium(bucket, ""), logger)

	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().PublishRecordEvent(mock.Anything, mock.Anything).Return(nil).Maybe()

	records := impl.NewRecordService(impl.RecordServiceParams{Store: store, Publisher: publisher, Logger: logger})
	states := impl.NewStateService(store, records)
	cities := impl.NewCityService(store, records)
	users := impl.NewUserService(impl.UserServiceParams{
		Store:   store,
		Records: records,
		Hasher:  auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Logger:  logger,
	})
	places := impl.NewPlaceService(store, records)

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "100KB"

	e := newEcho(ServerParams{
		Cfg:    cfg,
		Logger: logger,
		Store:  store,
		RouterParams: router.RouterParams{
			IndexHandler: handler.NewIndexHandler(impl.NewStatsService(store)),
			StateHandler: handler.NewStateHandler(handler.StateHandlerParams{StateUC: states, CityUC: cities}),
			AmenityHandler: handler.NewAmenityHandler(impl.NewAmenityService(store, records)),
			UserHandler:    handler.NewUserHandler(handler.UserHandlerParams{UserUC: users}),
			PlaceHandler: handler.NewPlaceHandler(handler.PlaceHandlerParams{
				CityUC:    cities,
				UserUC:    users,
				PlaceUC:   places,
				AmenityUC: impl.NewPlaceAmenityService(store, records),
			}),
			ReviewHandler: handler.NewReviewHandler(handler.ReviewHandlerParams{
				PlaceUC:  places,
				UserUC:   users,
				ReviewUC: impl.NewReviewService(store, records),
			}),
		},
	})

	return &testAPI{t: t, echo: e, store: store}
}

func (a *testAPI) do(method, path, body string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, router.APIPrefix+path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec, env
}

// create posts body and returns the id of the created record.
func (a *testAPI) create(path, body string) string {
	a.t.Helper()

	rec, env := a.do(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var data map[string]any
	require.NoError(a.t, json.Unmarshal(env.Data, &data))

	return data["id"].(string)
}

func TestAPI_Status(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodGet, "/status", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, string(env.Data))
	assert.NotEmpty(t, env.Meta.RequestID)
	assert.Equal(t, env.Meta.RequestID, rec.Header().Get(echo.HeaderXRequestID))
}

func TestAPI_StateCRUD(t *testing.T) {
	api := newTestAPI(t)

	id := api.create("/states", `{"name":"California"}`)

	rec, env := api.do(http.MethodGet, "/states/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var state map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.Equal(t, "California", state["name"])
	assert.Equal(t, "State", state[entity.ClassKey])

	rec, env = api.do(http.MethodPut, "/states/"+id, `{"name":"Nevada","id":"other"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.Equal(t, "Nevada", state["name"])
	assert.Equal(t, id, state["id"])

	rec, env = api.do(http.MethodGet, "/states/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	rec, env = api.do(http.MethodDelete, "/states/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, string(env.Data))

	rec, env = api.do(http.MethodGet, "/states/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Not found", env.Error.Message)
}

func TestAPI_BadBodies(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		rawType string
		message string
	}{
		{name: "missing name", method: http.MethodPost, path: "/states", body: `{}`, message: "Missing name"},
		{name: "array body", method: http.MethodPost, path: "/states", body: `[1,2]`, message: "Not a JSON"},
		{name: "garbage body", method: http.MethodPost, path: "/amenities", body: `{nope`, message: "Not a JSON"},
		{name: "missing email", method: http.MethodPost, path: "/users", body: `{"password":"p"}`, message: "Missing email"},
		{name: "missing password", method: http.MethodPost, path: "/users", body: `{"email":"e"}`, message: "Missing password"},
		{name: "wrong type", method: http.MethodPost, path: "/states", body: `{"name":12}`, message: "Invalid field value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := api.do(tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.message, env.Error.Message)
		})
	}
}

func TestAPI_NotJSONContentType(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, router.APIPrefix+"/states", strings.NewReader(`{"name":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()
	api.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not a JSON")
}

func TestAPI_UsersNeverExposePasswords(t *testing.T) {
	api := newTestAPI(t)

	id := api.create("/users", `{"email":"a@b.c","password":"pwd","first_name":"Ada"}`)

	rec, _ := api.do(http.MethodGet, "/users/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	stored, ok, err := api.store.Get(t.Context(), entity.ClassUser, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, "pwd", stored.(*entity.User).Password)

	rec, _ = api.do(http.MethodPut, "/users/"+id, `{"email":"new@b.c"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@b.c")
}

func TestAPI_NestedResources(t *testing.T) {
	api := newTestAPI(t)

	stateID := api.create("/states", `{"name":"California"}`)
	cityID := api.create("/states/"+stateID+"/cities", `{"name":"San Francisco"}`)
	userID := api.create("/users", `{"email":"host@b.c","password":"p"}`)

	rec, _ := api.do(http.MethodPost, "/states/unknown/cities", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// A state id never resolves as a city.
	rec, _ = api.do(http.MethodPost, "/cities/"+stateID+"/places", `{"user_id":"`+userID+`","name":"Loft"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env := api.do(http.MethodPost, "/cities/"+cityID+"/places", `{"name":"Loft"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing user_id", env.Error.Message)

	rec, _ = api.do(http.MethodPost, "/cities/"+cityID+"/places", `{"user_id":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = api.do(http.MethodPost, "/cities/"+cityID+"/places", `{"user_id":"`+userID+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing name", env.Error.Message)

	rec, _ = api.do(http.MethodPost, "/cities/"+cityID+"/places", `{"user_id":"`+userID+`","name":"Loft","latitude":120}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	placeID := api.create("/cities/"+cityID+"/places", `{"user_id":"`+userID+`","name":"Loft","max_guest":4}`)

	rec, env = api.do(http.MethodGet, "/cities/"+cityID+"/places", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var places []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &places))
	require.Len(t, places, 1)
	assert.Equal(t, placeID, places[0]["id"])
	assert.EqualValues(t, 4, places[0]["max_guest"])

	rec, env = api.do(http.MethodPost, "/places/"+placeID+"/reviews", `{"user_id":"`+userID+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing text", env.Error.Message)

	api.create("/places/"+placeID+"/reviews", `{"user_id":"`+userID+`","text":"Lovely"}`)

	rec, env = api.do(http.MethodGet, "/places/"+placeID+"/reviews", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var reviews []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &reviews))
	assert.Len(t, reviews, 1)

	rec, env = api.do(http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"amenities":0,"cities":1,"places":1,"reviews":1,"states":1,"users":1}`, string(env.Data))
}

func TestAPI_PlaceAmenities(t *testing.T) {
	api := newTestAPI(t)

	place := entity.NewPlace("city", "user", "Cabin")
	require.NoError(t, api.store.New(t.Context(), place))
	amenityID := api.create("/amenities", `{"name":"Wifi"}`)
	path := "/places/" + place.ID + "/amenities/" + amenityID

	rec, _ := api.do(http.MethodPost, path, "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = api.do(http.MethodPost, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := api.do(http.MethodGet, "/places/"+place.ID+"/amenities", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var amenities []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &amenities))
	require.Len(t, amenities, 1)
	assert.Equal(t, amenityID, amenities[0]["id"])

	rec, _ = api.do(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.do(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_UnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(http.MethodGet, "/nowhere", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
