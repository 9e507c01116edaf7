// Package response writes the JSON envelope every API reply uses.
package response

import (
	"net/http"

	deliverycontext "hbnb/internal/delivery/context"
	domainerrors "hbnb/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// SuccessResponse is the envelope of a successful reply.
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse is the envelope of a failed reply.
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g. "MISSING_FIELD"
	Message string `json:"message"`           // e.g. "Missing name"
	Details any    `json:"details,omitempty"` // Only for 4xx errors
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"`
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{
		Data: data,
		Meta: meta(c),
	})
}

// OK returns a 200 response
func OK(c echo.Context, data any) error {
	return Success(c, http.StatusOK, data)
}

// Created returns a 201 response
func Created(c echo.Context, data any) error {
	return Success(c, http.StatusCreated, data)
}

// Error returns an error response. Details are dropped for 5xx errors.
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	if statusCode >= http.StatusInternalServerError {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: meta(c),
	})
}

// AppError writes err's status, code and message.
func AppError(c echo.Context, err domainerrors.AppError) error {
	var details any
	if d := err.Details(); d != "" {
		details = d
	}

	return Error(c, err.HTTPCode(), err.ErrorCode(), err.Message(), details)
}

// NotFound returns a 404 error
func NotFound(c echo.Context) error {
	return AppError(c, domainerrors.ErrNotFound)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context) error {
	return AppError(c, domainerrors.ErrInternalError)
}
