package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrActorMissing is returned when a request carries no usable actor identity.
var ErrActorMissing = errors.New("actor identity required")

func invalidBody(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return errs.NewValueIsInvalidErrorWithCause("body", fmt.Errorf("%v", he.Message))
	}
	return errs.NewValueIsInvalidErrorWithCause("body", err)
}

// classify maps an error to the HTTP status and body the client receives.
func classify(err error) (int, servers.Error) {
	retryable := true

	var illegal *order.IllegalTransitionError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &illegal):
		allowed := nonNil(illegal.Allowed())
		return http.StatusConflict, servers.Error{
			Code:               http.StatusConflict,
			Message:            err.Error(),
			AllowedTransitions: &allowed,
		}
	case errors.Is(err, ErrActorMissing):
		return newError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, order.ErrOverrideNotAuthorized):
		return newError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return newError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrWriteConflict):
		return http.StatusConflict, servers.Error{Code: http.StatusConflict, Message: err.Error(), Retryable: &retryable}
	case errors.Is(err, errs.ErrStorageUnavailable), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, servers.Error{
			Code:      http.StatusServiceUnavailable,
			Message:   "storage unavailable",
			Retryable: &retryable,
		}
	case errors.Is(err, services.ErrPayoutHookFailed):
		return http.StatusBadGateway, servers.Error{Code: http.StatusBadGateway, Message: err.Error(), Retryable: &retryable}
	case errors.Is(err, order.ErrItemsLocked):
		return newError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidAmount), errors.Is(err, order.ErrTrackingNotAllowed):
		return newError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return newError(http.StatusBadRequest, err.Error())
	case errors.As(err, &he):
		return newError(he.Code, fmt.Sprintf("%v", he.Message))
	default:
		return newError(http.StatusInternalServerError, "internal error")
	}
}

func newError(code int, message string) (int, servers.Error) {
	return code, servers.Error{Code: code, Message: message}
}

// ErrorHandler renders errors that escape handlers and middleware in the
// same shape the handlers use.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := classify(err)
		if status >= http.StatusInternalServerError {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}
