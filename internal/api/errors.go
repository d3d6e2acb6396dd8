package api

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/tutor_calendar/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	errBadDate       = echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	errBadSessionID  = echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	errBadProposalID = echo.NewHTTPError(http.StatusBadRequest, "invalid proposal id")
)

// statusFor сопоставляет ошибку сервисного слоя с HTTP-кодом
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrProposalNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProposalSlotMissing):
		return http.StatusNotFound, true
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrNotMakeupEligible),
		errors.Is(err, service.ErrProposalNotPending):
		return http.StatusConflict, true
	case errors.Is(err, service.ErrUnknownStatus):
		return http.StatusBadRequest, true
	}
	return 0, false
}

// newHTTPErrorHandler отдаёт ошибки как JSON {"error": "..."}
func newHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code    int
			message interface{}
			httpErr *echo.HTTPError
			vErrs   validator.ValidationErrors
		)

		switch {
		case errors.As(err, &httpErr):
			if inner, ok := httpErr.Internal.(*echo.HTTPError); ok {
				httpErr = inner
			}
			code = httpErr.Code
			message = httpErr.Message
		case errors.As(err, &vErrs):
			fields := make(map[string]string, len(vErrs))
			for _, fe := range vErrs {
				fields[fe.Field()] = "failed on " + fe.Tag()
			}
			code = http.StatusBadRequest
			message = echo.Map{"error": "validation failed", "fields": fields}
		default:
			if status, ok := statusFor(err); ok {
				code = status
				message = err.Error()
				break
			}
			code = http.StatusInternalServerError
			message = http.StatusText(code)
			logger.Error("Unhandled API error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, message)
		}
		if err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}
