package commands_test

import (
	"strings"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/order/ordertest"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewUpdateFulfillmentStatusCommand(t *testing.T) {
	staff := ordertest.Staff(t, "staff1")

	t.Run("should sanitise note and tracking", func(t *testing.T) {
		cmd, err := commands.NewUpdateFulfillmentStatusCommand(
			kernel.NewUUID(),
			order.FulfillmentShipped,
			&order.TrackingUpdate{
				Carrier: strPtr("  <b>UPS</b> "),
				Number:  strPtr("1Z999"),
				URL:     strPtr("https://ups.example/track/1Z999"),
			},
			"left\nat <i>door</i>",
			staff,
		)

		require.NoError(t, err)
		assert.Equal(t, "left at door", cmd.Note())
		require.NotNil(t, cmd.Tracking())
		assert.Equal(t, "UPS", *cmd.Tracking().Carrier)
		assert.Nil(t, cmd.Tracking().Note)
	})

	t.Run("should drop an empty tracking update", func(t *testing.T) {
		cmd, err := commands.NewUpdateFulfillmentStatusCommand(
			kernel.NewUUID(), order.FulfillmentConfirmed, &order.TrackingUpdate{}, "", staff,
		)
		require.NoError(t, err)
		assert.Nil(t, cmd.Tracking())
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		_, err := commands.NewUpdateFulfillmentStatusCommand(kernel.NewUUID(), order.FulfillmentUnknown, nil, "", staff)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a non-http tracking url", func(t *testing.T) {
		_, err := commands.NewUpdateFulfillmentStatusCommand(
			kernel.NewUUID(), order.FulfillmentShipped,
			&order.TrackingUpdate{URL: strPtr("javascript:alert(1)")}, "", staff,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject overlong notes", func(t *testing.T) {
		_, err := commands.NewUpdateFulfillmentStatusCommand(
			kernel.NewUUID(), order.FulfillmentConfirmed, nil, strings.Repeat("x", commands.MaxNoteLength+1), staff,
		)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should require an actor", func(t *testing.T) {
		_, err := commands.NewUpdateFulfillmentStatusCommand(kernel.NewUUID(), order.FulfillmentConfirmed, nil, "", order.Actor{})
		require.ErrorIs(t, err, order.ErrActorIsNotConstructed)
	})
}
