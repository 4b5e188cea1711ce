package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(validCreateParams(t))
	require.NoError(t, err)

	numbers := new(MockOrderNumberGenerator)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)

	var added *order.Order
	mock.InOrder(
		numbers.On("Next", ctx).Return("MK-2026-000042", nil).Once(),
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
			added = args.Get(1).(*order.Order)
		}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, numbers, fixedClock)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, added)
	assert.Equal(t, cmd.OrderID(), added.ID())
	assert.Equal(t, "MK-2026-000042", added.Number())
	assert.Equal(t, fixedNow, added.CreatedAt())
	assert.Equal(t, "25.00", added.Financials().TotalAmount().String())
	assert.Equal(t, order.FulfillmentPending, added.FulfillmentStatus())
	assert.Equal(t, order.PayoutPending, added.PayoutStatus())
	assert.Len(t, added.History(), 2)

	numbers.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)
	numbers := new(MockOrderNumberGenerator)
	h := commands.NewCreateOrderCommandHandler(factory, numbers, fixedClock)

	err := h.Handle(ctx, commands.CreateOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	numbers.AssertNotCalled(t, "Next", mock.Anything)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_NumberError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(validCreateParams(t))

	numbers := new(MockOrderNumberGenerator)
	numbers.On("Next", ctx).Return("", errors.New("sequence unavailable")).Once()
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, numbers, fixedClock)
	err := h.Handle(ctx, cmd)
	require.EqualError(t, err, "sequence unavailable")
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_DiscountIsCapped(t *testing.T) {
	ctx := t.Context()
	p := validCreateParams(t)
	p.Discount = kernel.MustMoney("1000")
	cmd, err := commands.NewCreateOrderCommand(p)
	require.NoError(t, err)

	numbers := new(MockOrderNumberGenerator)
	numbers.On("Next", ctx).Return("MK-2026-000043", nil).Once()
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	var added *order.Order
	repo.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
		added = args.Get(1).(*order.Order)
	}).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, numbers, fixedClock)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, "0.00", added.Financials().TotalAmount().String())
	assert.Equal(t, "25.00", added.Financials().Discount().String())
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(validCreateParams(t))

	numbers := new(MockOrderNumberGenerator)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		numbers.On("Next", ctx).Return("MK-2026-000044", nil).Once(),
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, numbers, fixedClock)
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(validCreateParams(t))

	numbers := new(MockOrderNumberGenerator)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		numbers.On("Next", ctx).Return("MK-2026-000045", nil).Once(),
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, numbers, fixedClock)
	require.EqualError(t, h.Handle(ctx, cmd), "add error")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateOrderCommand(validCreateParams(t))

	numbers := new(MockOrderNumberGenerator)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		numbers.On("Next", ctx).Return("MK-2026-000046", nil).Once(),
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, numbers, fixedClock)
	require.EqualError(t, h.Handle(ctx, cmd), "commit error")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}
