package http

import (
	"errors"
	"log/slog"
	"net/http"

	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindIllegalState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err onto a status code by its errs.Kind. Internal failures
// are logged and answered with a generic message.
func (s *Server) writeError(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := statusOf(kind)

	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
		message = http.StatusText(status)
	}

	return c.JSON(status, Error{Code: status, Kind: kind.String(), Message: message})
}

// bindError classifies a body that could not be decoded as a validation
// failure.
func bindError(err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Internal != nil {
		err = httpErr.Internal
	}
	return errs.NewValueIsInvalidErrorWithCause("request body", err)
}
