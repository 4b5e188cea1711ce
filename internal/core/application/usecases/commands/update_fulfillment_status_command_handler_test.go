package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/order/ordertest"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateFulfillmentStatusCommandHandler_Handle(t *testing.T) {
	staff := ordertest.Staff(t, "staff1")

	t.Run("should persist a legal transition", func(t *testing.T) {
		ctx := t.Context()
		o := ordertest.New(t)
		factory, uow, repo := loadedUoW(o)
		repo.On("Update", ctx, o).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewUpdateFulfillmentStatusCommand(o.ID(), order.FulfillmentConfirmed, nil, "packed", staff)
		require.NoError(t, err)

		err = commands.NewUpdateFulfillmentStatusCommandHandler(factory, fixedClock).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.FulfillmentConfirmed, o.FulfillmentStatus())
		last := o.History()[len(o.History())-1]
		assert.Equal(t, "packed", last.Note())
		assert.Equal(t, fixedNow, last.Timestamp())
		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("should store tracking with the shipped transition", func(t *testing.T) {
		ctx := t.Context()
		o := ordertest.New(t)
		_, err := o.UpdateFulfillmentStatus(order.FulfillmentConfirmed, nil, "", staff, ordertest.CreatedAt)
		require.NoError(t, err)
		factory, uow, repo := loadedUoW(o)
		repo.On("Update", ctx, o).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewUpdateFulfillmentStatusCommand(o.ID(), order.FulfillmentShipped,
			&order.TrackingUpdate{Carrier: strPtr("UPS"), Number: strPtr("1Z999")}, "", staff)
		require.NoError(t, err)

		require.NoError(t, commands.NewUpdateFulfillmentStatusCommandHandler(factory, fixedClock).Handle(ctx, cmd))
		assert.Equal(t, "UPS", o.Tracking().Carrier())
		assert.Equal(t, "1Z999", o.Tracking().Number())
	})

	t.Run("should reject an illegal transition without writing", func(t *testing.T) {
		ctx := t.Context()
		o := ordertest.New(t)
		factory, uow, repo := loadedUoW(o)

		cmd, _ := commands.NewUpdateFulfillmentStatusCommand(o.ID(), order.FulfillmentDelivered, nil, "", staff)
		err := commands.NewUpdateFulfillmentStatusCommandHandler(factory, fixedClock).Handle(ctx, cmd)

		var illegal *order.IllegalTransitionError
		require.ErrorAs(t, err, &illegal)
		assert.Equal(t, []string{"pending", "confirmed", "cancelled"}, illegal.Allowed())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("should skip the write when nothing changes", func(t *testing.T) {
		ctx := t.Context()
		o := ordertest.New(t)
		factory, uow, repo := loadedUoW(o)

		cmd, _ := commands.NewUpdateFulfillmentStatusCommand(o.ID(), order.FulfillmentPending, nil, "again", staff)
		require.NoError(t, commands.NewUpdateFulfillmentStatusCommandHandler(factory, fixedClock).Handle(ctx, cmd))

		assert.Len(t, o.History(), 2)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject tracking before shipping", func(t *testing.T) {
		ctx := t.Context()
		o := ordertest.New(t)
		factory, _, repo := loadedUoW(o)

		cmd, _ := commands.NewUpdateFulfillmentStatusCommand(o.ID(), order.FulfillmentConfirmed,
			&order.TrackingUpdate{Number: strPtr("1Z999")}, "", staff)
		err := commands.NewUpdateFulfillmentStatusCommandHandler(factory, fixedClock).Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrTrackingNotAllowed)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should surface not found", func(t *testing.T) {
		ctx := t.Context()
		o := ordertest.New(t)
		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		factory := new(MockOrderUoWFactory)
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, o.ID()).Return(nil, errs.NewObjectNotFoundError("order", o.ID().String())).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		cmd, _ := commands.NewUpdateFulfillmentStatusCommand(o.ID(), order.FulfillmentConfirmed, nil, "", staff)
		err := commands.NewUpdateFulfillmentStatusCommandHandler(factory, fixedClock).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.AssertExpectations(t)
	})

	t.Run("should surface a write conflict", func(t *testing.T) {
		ctx := t.Context()
		o := ordertest.New(t)
		factory, uow, repo := loadedUoW(o)
		repo.On("Update", ctx, o).Return(errs.NewWriteConflictError("order", o.ID().String())).Once()

		cmd, _ := commands.NewUpdateFulfillmentStatusCommand(o.ID(), order.FulfillmentCancelled, nil, "", staff)
		err := commands.NewUpdateFulfillmentStatusCommandHandler(factory, fixedClock).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrWriteConflict)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should fail on an unconstructed command", func(t *testing.T) {
		factory := new(MockOrderUoWFactory)
		err := commands.NewUpdateFulfillmentStatusCommandHandler(factory, fixedClock).
			Handle(t.Context(), commands.UpdateFulfillmentStatusCommand{})
		require.ErrorIs(t, err, commands.ErrUpdateFulfillmentStatusCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("should fail when the transaction cannot start", func(t *testing.T) {
		ctx := t.Context()
		uow := new(MockOrderUoW)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

		cmd, _ := commands.NewUpdateFulfillmentStatusCommand(ordertest.New(t).ID(), order.FulfillmentConfirmed, nil, "", staff)
		err := commands.NewUpdateFulfillmentStatusCommandHandler(factory, fixedClock).Handle(ctx, cmd)
		require.EqualError(t, err, "begin error")
	})
}
