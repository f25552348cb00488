package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/insight"
)

// getRequestID reads the id assigned by the RequestID middleware, falling back to the inbound header
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes data as the 200 response body
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, data)
}

// HandleError maps err onto the error envelope and its status code
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := errors.FromDomain(err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", appErr.HTTPCode),
			zap.String("kind", appErr.Code.String()),
			zap.Error(err),
		}
		if len(appErr.Details) > 0 {
			fields = append(fields, zap.Any("details", appErr.Details))
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	return c.JSON(appErr.HTTPCode, insight.ErrorResponse{
		Error: insight.ErrorBody{
			Kind:    appErr.Code.String(),
			Message: appErr.Message,
		},
	})
}

// ErrorHandler renders errors raised by echo itself (unknown routes, body limit) in the API envelope
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if stdErrors.As(err, &he) {
			switch {
			case he.Code == http.StatusRequestEntityTooLarge:
				err = errors.ErrRequestTooLarge(he)
			case he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed:
				err = errors.ErrNotFound(c.Request().Method, c.Request().URL.Path)
			case he.Code < http.StatusInternalServerError:
				err = errors.ErrInvalidPayload(he)
			}
		}

		if herr := HandleError(logger, c, err); herr != nil && logger != nil {
			logger.Error("failed to write error response", zap.Error(herr))
		}
	}
}
