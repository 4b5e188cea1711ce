package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List orders
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Register an order handed off by checkout
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Order detail with history
	// (GET /api/v1/orders/{id})
	GetOrder(ctx echo.Context, id openapi_types.UUID) error
	// Move the fulfillment track
	// (PUT /api/v1/orders/{id}/status)
	UpdateFulfillmentStatus(ctx echo.Context, id openapi_types.UUID) error
	// Move the payout track
	// (PUT /api/v1/orders/{id}/payout)
	UpdatePayoutStatus(ctx echo.Context, id openapi_types.UUID) error
	// Administrative payout override back to pending
	// (POST /api/v1/orders/{id}/payout/reset)
	ResetPayout(ctx echo.Context, id openapi_types.UUID) error
	// Correct shipping fee, tax or discount
	// (PUT /api/v1/orders/{id}/financials)
	AdjustFinancials(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var err error
	var params ListOrdersParams

	query := ctx.QueryParams()
	bind := []struct {
		name string
		dest any
	}{
		{"status", &params.Status},
		{"payoutStatus", &params.PayoutStatus},
		{"vendor", &params.Vendor},
		{"startDate", &params.StartDate},
		{"endDate", &params.EndDate},
		{"minTotal", &params.MinTotal},
		{"maxTotal", &params.MaxTotal},
		{"sort", &params.Sort},
		{"page", &params.Page},
		{"pageSize", &params.PageSize},
	}
	for _, p := range bind {
		err = runtime.BindQueryParameter("form", true, false, p.name, query, p.dest)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", p.name, err))
		}
	}

	return w.Handler.ListOrders(ctx, params)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

// UpdateFulfillmentStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateFulfillmentStatus(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateFulfillmentStatus(ctx, id)
}

// UpdatePayoutStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdatePayoutStatus(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdatePayoutStatus(ctx, id)
}

// ResetPayout converts echo context to params.
func (w *ServerInterfaceWrapper) ResetPayout(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ResetPayout(ctx, id)
}

// AdjustFinancials converts echo context to params.
func (w *ServerInterfaceWrapper) AdjustFinancials(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AdjustFinancials(ctx, id)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is an interface that wraps the methods of echo.Echo and
// echo.Group used to register handlers.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, and prepends baseURL
// to the paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:id", wrapper.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:id/status", wrapper.UpdateFulfillmentStatus)
	router.PUT(baseURL+"/api/v1/orders/:id/payout", wrapper.UpdatePayoutStatus)
	router.POST(baseURL+"/api/v1/orders/:id/payout/reset", wrapper.ResetPayout)
	router.PUT(baseURL+"/api/v1/orders/:id/financials", wrapper.AdjustFinancials)
}
