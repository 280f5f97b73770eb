package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardboard/core/internal/domain/entities"
	"github.com/cardboard/core/internal/infrastructure/logger"
	"github.com/cardboard/core/internal/ports"
)

// StatusFor maps a domain error kind to its HTTP status code.
func StatusFor(kind entities.ErrorKind) int {
	switch kind {
	case entities.KindInvalidInput:
		return http.StatusBadRequest
	case entities.KindNotFound:
		return http.StatusNotFound
	case entities.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders domain errors as ErrorResponse bodies and passes
// echo's own HTTP errors through. Internal failures are logged and their
// detail is not sent to the client.
func ErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			code int
			body interface{}
		)

		var he *echo.HTTPError
		var de *entities.Error
		switch {
		case errors.As(err, &he):
			code = he.Code
			body = map[string]interface{}{"message": he.Message}
			if he.Internal != nil {
				err = he.Internal
			}
		case errors.As(err, &de):
			code = StatusFor(de.Kind)
			resp := ports.ErrorResponse{Code: de.Kind, Message: de.Message, Field: de.Field}
			if de.Kind == entities.KindInternal {
				resp.Message = http.StatusText(code)
			}
			body = resp
		default:
			code = http.StatusInternalServerError
			body = ports.ErrorResponse{Code: entities.KindInternal, Message: http.StatusText(code)}
		}

		if code >= http.StatusInternalServerError {
			log.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			log.Errorw("Error sending response", "error", err)
		}
	}
}
