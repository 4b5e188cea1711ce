package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/order"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"

	// APIPrefix is the path prefix of every business endpoint.
	APIPrefix = "/api/"

	actorContextKey = "actor"
)

func apiOnly(c echo.Context) bool {
	return !strings.HasPrefix(c.Request().URL.Path, APIPrefix)
}

// ActorMiddleware reads the acting user from the X-Actor-ID and X-Actor-Role
// headers set by the authenticating proxy. Only staff and admin may act
// over HTTP.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if apiOnly(c) {
				return next(c)
			}

			id := strings.TrimSpace(c.Request().Header.Get(HeaderActorID))
			rawRole := strings.TrimSpace(c.Request().Header.Get(HeaderActorRole))
			if id == "" || rawRole == "" {
				return fmt.Errorf("%w: %s and %s headers are required", ErrActorMissing, HeaderActorID, HeaderActorRole)
			}

			role, err := order.ParseRole(rawRole)
			if err != nil || role == order.RoleSystem {
				return fmt.Errorf("%w: role %q cannot act over HTTP", ErrActorMissing, rawRole)
			}
			actor, err := order.NewActor(id, role)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrActorMissing, err)
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) order.Actor {
	actor, _ := c.Get(actorContextKey).(order.Actor)
	return actor
}

// OpenAPIValidator rejects requests that do not match doc with 400 before
// they reach a handler.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	doc.Servers = nil
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		MultiError:         true,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if apiOnly(c) {
				return next(c)
			}

			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				if errors.Is(findErr, routers.ErrMethodNotAllowed) {
					return echo.NewHTTPError(http.StatusMethodNotAllowed, findErr.Error())
				}
				return echo.NewHTTPError(http.StatusNotFound, findErr.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			return next(c)
		}
	}, nil
}

// RequestTimeout bounds the request context. Storage calls that run out of
// time surface as 503.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: timeout,
		ErrorHandler: func(err error, c echo.Context) error {
			if errors.Is(err, context.DeadlineExceeded) {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "request timed out")
			}
			return err
		},
	})
}

// AccessLog writes one structured line per request.
func AccessLog(log *zap.Logger) echo.MiddlewareFunc {
	log = log.With(zap.String("component", "access"))
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("requestId", v.RequestID),
			}
			if actor := actorFrom(c); actor.Validate() == nil {
				fields = append(fields, zap.String("actorId", actor.ID()))
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
