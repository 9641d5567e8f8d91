package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/studiobook/studio-booking/internal/apperr"
	"go.uber.org/zap"
)

// ErrorHandler maps domain error kinds to HTTP status codes. Policy errors
// get 422 so UIs can show the hour threshold from the message; state and
// conflict errors both mean "someone else got there first" and return 409.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := err.Error()

		switch apperr.KindOf(err) {
		case apperr.Validation:
			code = http.StatusBadRequest
		case apperr.NotFound:
			code = http.StatusNotFound
		case apperr.Conflict, apperr.State:
			code = http.StatusConflict
		case apperr.Policy:
			code = http.StatusUnprocessableEntity
		case apperr.Integrity:
			code = http.StatusInternalServerError
		default:
			if he, ok := err.(*echo.HTTPError); ok {
				code = he.Code
				if m, ok := he.Message.(string); ok {
					msg = m
				}
			}
		}

		if code == http.StatusInternalServerError {
			logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			msg = "internal server error"
		}

		_ = c.JSON(code, map[string]string{"message": msg})
	}
}
