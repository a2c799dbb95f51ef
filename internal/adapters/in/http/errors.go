package http

import (
	"errors"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// StatusFor maps the error taxonomy to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrAlreadyTerminal),
		errors.Is(err, errs.ErrCourierUnavailable),
		errors.Is(err, errs.ErrStaleObject):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		return ctx.JSON(status, Error{Code: status, Message: http.StatusText(status)})
	}
	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}

func (s *Server) invalidBody(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}
