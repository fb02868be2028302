package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"brokersim/internal/domain"
)

// Response represents a standardized API response
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// ErrorDetail carries the failure taxonomy fields every error response
// exposes: kind, timestamp, and the request that failed.
type ErrorDetail struct {
	Kind      domain.ErrorKind `json:"kind"`
	Timestamp string           `json:"timestamp"`
	Path      string           `json:"path"`
	Method    string           `json:"method"`
}

// SuccessResponse sends a success response
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   data,
	})
}

// SuccessMessageResponse sends a success response with a message
func SuccessMessageResponse(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// CreatedResponse sends a 201 Created response
func CreatedResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Status: "success",
		Data:   data,
	})
}

// FailureResponse maps a domain error to its status family and sends
// the error envelope. Unexpected errors collapse to a generic 500 so
// collaborator internals never leak to callers.
func FailureResponse(c echo.Context, err error) error {
	kind := domain.KindOf(err)

	message := err.Error()
	if kind == domain.KindInternal {
		message = "Internal server error"
		c.Logger().Error(err)
	}

	return c.JSON(statusFor(kind), Response{
		Status:  "error",
		Message: message,
		Error: ErrorDetail{
			Kind:      kind,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Path:      c.Request().URL.Path,
			Method:    c.Request().Method,
		},
	})
}

// NewHTTPErrorHandler renders domain errors escaping middleware through
// the same envelope handlers use, so 401/403 from the route guard carry
// kind, timestamp, path, and method like every other failure. Anything
// else (route not found, method not allowed) falls through to echo's
// default handler.
func NewHTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var de *domain.Error
		if errors.As(err, &de) {
			if ferr := FailureResponse(c, de); ferr != nil {
				c.Logger().Error(ferr)
			}
			return
		}

		e.DefaultHTTPErrorHandler(err, c)
	}
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, message string) error {
	return FailureResponse(c, domain.InvalidArgument(message))
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidArgument, domain.KindInvalidState:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
