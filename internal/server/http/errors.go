package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/logging"
)

// apiError is returned by handlers when the default mapping of the cause
// needs a different client message (e.g. which resource was not found).
type apiError struct {
	code int
	msg  string
	err  error
}

func (e *apiError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *apiError) Unwrap() error { return e.err }

func notFound(msg string, err error) error {
	return &apiError{code: http.StatusNotFound, msg: msg, err: err}
}

// statusFor maps a service error onto an HTTP status and a fixed message.
func statusFor(err error) (int, string) {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae.code, ae.msg
	}
	if msg, ok := common.ValidationMessage(err); ok {
		return http.StatusBadRequest, msg
	}

	switch {
	case errors.Is(err, common.ErrDuplicateIdentity):
		return http.StatusConflict, MsgEmailRegistered
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, MsgInvalidCredentials
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized, MsgUnauthorized
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, http.StatusText(http.StatusNotFound)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if he.Code == http.StatusInternalServerError {
			msg = MsgInternal
		}
		return he.Code, msg
	}

	return http.StatusInternalServerError, MsgInternal
}

// errorHandler renders every error returned by a handler or middleware as
// the JSON failure envelope.
func errorHandler(logger logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := statusFor(err)
		if code >= http.StatusInternalServerError {
			logger.Error(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = respondError(c, code, msg)
	}
}
