// Package validator plugs go-playground/validator into echo and reports
// failures as domain errors.
package validator

import (
	"reflect"
	"strings"

	domainerrors "hbnb/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// RequestValidator implements echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

// New builds a validator that names fields by their json tag.
func New() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &RequestValidator{validate: v}
}

// Validate checks i and returns the first failing field as an AppError:
// a missing mandatory field yields "Missing <field>", anything else a
// validation failure naming the field and rule.
func (rv *RequestValidator) Validate(i any) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.WithStack(err)
	}

	first := fieldErrs[0]
	if first.Tag() == "required" {
		return domainerrors.MissingField(first.Field())
	}

	return domainerrors.ErrValidationFailed.WithDetails(first.Field() + " failed " + first.Tag())
}
