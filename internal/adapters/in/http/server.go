// Package http is the REST adapter. Server implements the generated
// ServerInterface: it turns requests into commands and queries, runs them
// and renders the read models. Every mutating endpoint answers with the
// order as stored after the change.
package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h   Handlers
	log *zap.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{h: h, log: log.With(zap.String("component", "http"))}
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	query, err := listOrdersQueryFrom(params)
	if err != nil {
		return s.fail(ctx, err)
	}

	page, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderPage(page))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := s.bind(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	params, err := createOrderParamsFrom(body, actorFrom(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateOrderCommand(params)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.renderOrder(ctx, http.StatusCreated, cmd.OrderID())
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := orderIDFrom(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.renderOrder(ctx, http.StatusOK, orderID)
}

// UpdateFulfillmentStatus handles PUT /api/v1/orders/{id}/status.
func (s *Server) UpdateFulfillmentStatus(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := orderIDFrom(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body servers.UpdateFulfillmentStatusRequest
	if err = s.bind(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	status, err := order.ParseFulfillmentStatus(string(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUpdateFulfillmentStatusCommand(
		orderID, status, trackingUpdateFrom(body.TrackingInfo), deref(body.Note), actorFrom(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.UpdateFulfillmentStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.renderOrder(ctx, http.StatusOK, orderID)
}

// UpdatePayoutStatus handles PUT /api/v1/orders/{id}/payout.
func (s *Server) UpdatePayoutStatus(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := orderIDFrom(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body servers.UpdatePayoutStatusRequest
	if err = s.bind(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	status, err := order.ParsePayoutStatus(string(body.PayoutStatus))
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewUpdatePayoutStatusCommand(orderID, status, deref(body.Note), actorFrom(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.UpdatePayoutStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.renderOrder(ctx, http.StatusOK, orderID)
}

// ResetPayout handles POST /api/v1/orders/{id}/payout/reset.
func (s *Server) ResetPayout(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := orderIDFrom(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body servers.ResetPayoutRequest
	if err = s.bind(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewResetPayoutCommand(orderID, body.Note, actorFrom(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.ResetPayout.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.renderOrder(ctx, http.StatusOK, orderID)
}

// AdjustFinancials handles PUT /api/v1/orders/{id}/financials.
func (s *Server) AdjustFinancials(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := orderIDFrom(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body servers.AdjustFinancialsRequest
	if err = s.bind(ctx, &body); err != nil {
		return s.fail(ctx, err)
	}

	shipping, shippingErr := optionalMoney("shippingFee", body.ShippingFee)
	tax, taxErr := optionalMoney("tax", body.Tax)
	discount, discountErr := optionalMoney("discount", body.Discount)
	if err = joinErrors(shippingErr, taxErr, discountErr); err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewAdjustFinancialsCommand(orderID, shipping, tax, discount)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.h.AdjustFinancials.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return s.renderOrder(ctx, http.StatusOK, orderID)
}

func (s *Server) renderOrder(ctx echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	detail, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(status, toOrderDetail(detail))
}

// bind decodes the JSON body and runs struct validation.
func (s *Server) bind(ctx echo.Context, dest any) error {
	if err := ctx.Bind(dest); err != nil {
		return invalidBody(err)
	}
	return ctx.Validate(dest)
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	return ctx.JSON(status, body)
}
