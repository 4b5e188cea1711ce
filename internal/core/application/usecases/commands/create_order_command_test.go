package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/order/ordertest"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateParams(t *testing.T) commands.CreateOrderParams {
	t.Helper()
	return commands.CreateOrderParams{
		OrderID:         kernel.NewUUID(),
		VendorID:        kernel.NewUUID(),
		Customer:        ordertest.Guest(t),
		Items:           []order.LineItem{ordertest.Item("10", 2)},
		ShippingAddress: ordertest.Address(t),
		ShippingFee:     kernel.MustMoney("5"),
		Actor:           order.SystemActor("checkout"),
	}
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	p := validCreateParams(t)
	cmd, err := commands.NewCreateOrderCommand(p)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, p.OrderID, cmd.OrderID())
	assert.Equal(t, p.VendorID, cmd.Params().VendorID)
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	p := validCreateParams(t)
	p.OrderID = kernel.UUID{}
	_, err := commands.NewCreateOrderCommand(p)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_MissingVendor(t *testing.T) {
	p := validCreateParams(t)
	p.VendorID = kernel.UUID{}
	_, err := commands.NewCreateOrderCommand(p)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "vendorId")
}

func TestNewCreateOrderCommand_NoItems(t *testing.T) {
	p := validCreateParams(t)
	p.Items = nil
	_, err := commands.NewCreateOrderCommand(p)
	require.ErrorIs(t, err, order.ErrItemsRequired)
}

func TestNewCreateOrderCommand_ReportsEveryProblem(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, order.ErrItemsRequired)
	assert.ErrorIs(t, err, kernel.ErrAddressIsNotConstructed)
	assert.ErrorIs(t, err, order.ErrActorIsNotConstructed)
}

func TestCreateOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	err := commands.CreateOrderCommand{}.Validate()
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}
