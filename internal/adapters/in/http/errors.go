package http

import (
	"errors"
	"net/http"

	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError maps a domain error to its HTTP status and a stable,
// client-safe message. The full error detail is logged server-side and
// never leaks into the response body.
func respondError(ctx echo.Context, err error) error {
	status, message := classify(err)

	logger := ctx.Logger()
	if status >= http.StatusInternalServerError {
		logger.Errorf("%s %s failed: %v", ctx.Request().Method, ctx.Path(), err)
	} else {
		logger.Warnf("%s %s rejected (%d): %v", ctx.Request().Method, ctx.Path(), status, err)
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "order not found"
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict, "order is in a terminal state"
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
