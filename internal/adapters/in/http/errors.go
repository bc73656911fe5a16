package http

import (
	"errors"
	"net/http"

	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HTTPStatus maps a use case error onto a response code.
func HTTPStatus(err error) int {
	var httpErr *echo.HTTPError

	switch {
	case err == nil:
		return http.StatusOK

	case errors.As(err, &httpErr):
		return httpErr.Code

	case errs.IsValidation(err):
		return http.StatusBadRequest

	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden

	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound

	case errors.Is(err, errs.ErrStateConflict):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders every error as servers.Error. Internal failures are
// logged and reported without details.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := HTTPStatus(err)
		message := err.Error()

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(httpErr.Code)
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			message = http.StatusText(status)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, servers.Error{Code: status, Message: message})
		}
		if writeErr != nil {
			logger.Warn("failed to write error response", zap.Error(writeErr))
		}
	}
}

func invalidBody(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
}
