package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/dmitrijs2005/fintrack/internal/server/auth"
	"github.com/dmitrijs2005/fintrack/internal/server/metrics"
)

// RequestID assigns a ULID to every request that does not already carry a
// valid one and echoes it in the X-Request-ID response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(common.RequestIDHeaderName)
			if _, err := ulid.ParseStrict(id); err != nil {
				id = ulid.Make().String()
			}
			c.Set(requestIDKey, id)
			c.Response().Header().Set(common.RequestIDHeaderName, id)
			return next(c)
		}
	}
}

const requestIDKey = "request_id"

func requestID(c echo.Context) string {
	id, _ := c.Get(requestIDKey).(string)
	return id
}

// RequestLogger logs every request after it completes and records it in m.
// The route template (not the raw path) is used as the metric label.
func RequestLogger(logger logging.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// render now so the logged status is the one the client sees
				c.Error(err)
			}

			latency := time.Since(start)
			req := c.Request()
			status := c.Response().Status

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveHTTP(req.Method, route, status, latency)

			args := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", status,
				"latency", latency,
				"request_id", requestID(c),
				"remote_ip", c.RealIP(),
			}
			switch {
			case status >= 500:
				logger.Error(req.Context(), "request", args...)
			case status >= 400:
				logger.Warn(req.Context(), "request", args...)
			default:
				logger.Info(req.Context(), "request", args...)
			}

			return nil
		}
	}
}

// Recovery turns a panicking handler into a 500 response.
func Recovery(logger logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error(c.Request().Context(), "panic recovered",
						"panic", fmt.Sprint(r),
						"stack", string(debug.Stack()),
						"method", c.Request().Method,
						"path", c.Request().URL.Path,
					)
					returnErr = respondError(c, http.StatusInternalServerError, MsgInternal)
				}
			}()

			return next(c)
		}
	}
}

// CORS sets cross-origin headers and answers preflight requests with an
// empty 200. With "*" in allowedOrigins the headers go on every response;
// otherwise only on requests from a listed origin.
func CORS(allowedOrigins []string) echo.MiddlewareFunc {
	allowAll := false
	originSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		originSet[o] = true
	}

	const (
		allowMethods = "GET,POST,PUT,DELETE,OPTIONS"
		allowHeaders = "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token,X-Request-ID"
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			h := c.Response().Header()
			origin := req.Header.Get(echo.HeaderOrigin)

			switch {
			case allowAll:
				h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			case origin != "" && originSet[origin]:
				h.Set(echo.HeaderAccessControlAllowOrigin, origin)
				h.Add(echo.HeaderVary, echo.HeaderOrigin)
			default:
				return next(c)
			}

			h.Set(echo.HeaderAccessControlAllowMethods, allowMethods)
			h.Set(echo.HeaderAccessControlAllowHeaders, allowHeaders)
			h.Set(echo.HeaderAccessControlExposeHeaders, common.RequestIDHeaderName)

			if req.Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}

// RequireAuth runs the gateway authorizer on the Authorization header. Denied
// requests get a 401 before any handler runs; allowed ones carry the
// identity in the request context.
func RequireAuth(a *auth.Authorizer, logger logging.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			d := a.Authorize(req.Header.Get(echo.HeaderAuthorization))
			m.ObserveDecision("http", d.Allowed)
			if !d.Allowed {
				logger.Debug(req.Context(), "request denied",
					"path", req.URL.Path,
					"reason", d.Reason,
					"request_id", requestID(c),
				)
				return respondError(c, http.StatusUnauthorized, MsgUnauthorized)
			}

			c.SetRequest(req.WithContext(auth.WithIdentity(req.Context(), d.Identity)))
			return next(c)
		}
	}
}

// identity returns the identity placed in the context by RequireAuth.
func identity(c echo.Context) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok || strings.TrimSpace(id.UserID) == "" {
		return auth.Identity{}, common.ErrUnauthorized
	}
	return id, nil
}
