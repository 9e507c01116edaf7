// Package handler implements the REST handlers of the API.
package handler

import (
	"encoding/json"
	"strings"

	"hbnb/internal/domain/entity"
	domainerrors "hbnb/internal/domain/errors"
	"hbnb/internal/usecase"

	"github.com/go-viper/mapstructure/v2"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bindAttributes reads the request body, which must be a JSON object.
func bindAttributes(c echo.Context) (usecase.Attributes, error) {
	req := c.Request()
	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return nil, domainerrors.ErrNotJSON
	}

	var attrs usecase.Attributes
	if err := json.NewDecoder(req.Body).Decode(&attrs); err != nil || attrs == nil {
		return nil, domainerrors.ErrNotJSON
	}

	return attrs, nil
}

// bindRequest reads the body into target and validates it. The raw
// attributes are returned as well for fields target does not declare.
func bindRequest(c echo.Context, target any) (usecase.Attributes, error) {
	attrs, err := bindAttributes(c)
	if err != nil {
		return nil, err
	}
	if err := decodeRequest(c, attrs, target); err != nil {
		return nil, err
	}

	return attrs, nil
}

// decodeRequest copies the attributes target declares (by json tag) and
// validates the result. A value of the wrong type is a validation failure.
func decodeRequest(c echo.Context, attrs usecase.Attributes, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "json",
		Squash:  true,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	if err := decoder.Decode(map[string]any(attrs)); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return c.Validate(target)
}

// view is the public form of a record. Passwords never leave the service.
func view(r entity.Record) map[string]any {
	data := entity.Serialize(r)
	delete(data, "password")

	return data
}

func views[T entity.Record](records []T) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, r := range records {
		out = append(out, view(r))
	}

	return out
}

// deref returns the pointed-to value, or the zero value for nil.
func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}

	return *p
}
