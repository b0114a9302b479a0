// Package response renders resources, pages and errors for the HTTP API.
package response

import (
	"net/http"

	deliverycontext "coderr/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta,omitempty"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Additional error context (only for 4xx errors)
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"` // Request tracking ID
}

// Success writes data as the response body.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// NoContent returns a 204 without a body.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Error writes an error body. Details are only kept for client errors other
// than 401 and 403.
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	if !exposesDetails(statusCode) {
		details = nil
	}

	body := ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	}
	if requestID := deliverycontext.GetRequestID(c); requestID != "" {
		body.Meta = &MetaInfo{RequestID: requestID}
	}

	return c.JSON(statusCode, body)
}

func exposesDetails(statusCode int) bool {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return false
	default:
		return statusCode < http.StatusInternalServerError
	}
}

// MethodNotAllowed returns a 405 error
func MethodNotAllowed(c echo.Context) error {
	return Error(c, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method \""+c.Request().Method+"\" not allowed.", nil)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}
