package http

import (
	"context"
	"net/http"
	"time"

	"marketplace/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	RequestTimeout time.Duration
	// HealthCheck is run by GET /health; nil reports healthy.
	HealthCheck func(ctx context.Context) error
}

// NewRouter builds the echo instance: ambient middleware, health and
// Swagger UI, and the API routes guarded by actor and contract checks.
func NewRouter(server servers.ServerInterface, cfg RouterConfig, log *zap.Logger) (*echo.Echo, error) {
	if log == nil {
		log = zap.NewNop()
	}

	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	contract, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler(log)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(AccessLog(log))
	if cfg.RequestTimeout > 0 {
		e.Use(RequestTimeout(cfg.RequestTimeout))
	}
	e.Use(ActorMiddleware())
	e.Use(contract)

	e.GET("/health", func(c echo.Context) error {
		if cfg.HealthCheck != nil {
			if err := cfg.HealthCheck(c.Request().Context()); err != nil {
				return c.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)
	return e, nil
}
