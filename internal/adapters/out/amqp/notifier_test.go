package amqp_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"marketplace/internal/adapters/out/amqp"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	rabbit "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishWithContext(
	ctx context.Context, exchange, key string, mandatory, immediate bool, msg rabbit.Publishing,
) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func shippedEvent() order.StatusChanged {
	return order.StatusChanged{
		OrderID:     kernel.NewUUID(),
		OrderNumber: "MK-2026-000042",
		VendorID:    kernel.NewUUID(),
		Seq:         4,
		Track:       order.TrackFulfillment,
		From:        "confirmed",
		To:          "shipped",
		ActorID:     "staff1",
		Note:        "handed to carrier",
		OccurredAt:  time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestRoutingKey(t *testing.T) {
	event := shippedEvent()
	assert.Equal(t, "order.fulfillment.shipped", amqp.RoutingKey(event))

	event.Track, event.To = order.TrackPayout, "completed"
	assert.Equal(t, "order.payout.completed", amqp.RoutingKey(event))
}

func TestNotifier_NotifyStatusChanged(t *testing.T) {
	ctx := t.Context()
	event := shippedEvent()
	publisher := &MockPublisher{}

	var published rabbit.Publishing
	publisher.On("PublishWithContext", ctx, "marketplace.orders", "order.fulfillment.shipped", false, false, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(5).(rabbit.Publishing) }).
		Return(nil).Once()

	err := amqp.NewNotifier(publisher, "marketplace.orders").NotifyStatusChanged(ctx, event)

	require.NoError(t, err)
	publisher.AssertExpectations(t)
	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, rabbit.Persistent, published.DeliveryMode)
	assert.Equal(t, event.OrderID.String()+":4", published.MessageId)
	assert.Equal(t, amqp.MessageType, published.Type)

	var body amqp.StatusChangedMessage
	require.NoError(t, json.Unmarshal(published.Body, &body))
	assert.Equal(t, event.OrderID.String(), body.OrderID)
	assert.Equal(t, "MK-2026-000042", body.OrderNumber)
	assert.Equal(t, "fulfillment", body.Track)
	assert.Equal(t, "confirmed", body.From)
	assert.Equal(t, "shipped", body.To)
	assert.Equal(t, 4, body.Seq)
	assert.Equal(t, "handed to carrier", body.Note)
	assert.False(t, body.Override)
	assert.True(t, event.OccurredAt.Equal(body.OccurredAt))
}

func TestNotifier_PublishFailure(t *testing.T) {
	ctx := t.Context()
	publisher := &MockPublisher{}
	publisher.On("PublishWithContext", ctx, "ex", mock.Anything, false, false, mock.Anything).
		Return(errors.New("channel closed")).Once()

	err := amqp.NewNotifier(publisher, "ex").NotifyStatusChanged(ctx, shippedEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "order.fulfillment.shipped")
	assert.Contains(t, err.Error(), "channel closed")
}

func TestNotifier_WaitingPublishHonoursDeadline(t *testing.T) {
	stalled := make(chan struct{})
	release := make(chan struct{})
	publisher := &MockPublisher{}
	publisher.On("PublishWithContext", mock.Anything, "ex", mock.Anything, false, false, mock.Anything).
		Run(func(mock.Arguments) {
			close(stalled)
			<-release
		}).
		Return(nil).Once()
	notifier := amqp.NewNotifier(publisher, "ex")

	go func() { _ = notifier.NotifyStatusChanged(context.Background(), shippedEvent()) }()
	<-stalled
	defer close(release)

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()

	err := notifier.NotifyStatusChanged(ctx, shippedEvent())

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
	publisher.AssertNumberOfCalls(t, "PublishWithContext", 1)
}
