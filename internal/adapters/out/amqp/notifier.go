// Package amqp publishes committed order status changes to a RabbitMQ topic
// exchange. Routing keys have the form order.<track>.<status>, e.g.
// order.fulfillment.shipped or order.payout.completed, so consumers can bind
// to a single track or status with wildcards.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/order"

	rabbit "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/semaphore"
)

// MessageType is set on every published message.
const MessageType = "order.status_changed"

// Publisher is the subset of *amqp091.Channel used by the notifier.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg rabbit.Publishing) error
}

// StatusChangedMessage is the JSON body of a published event.
type StatusChangedMessage struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	VendorID    string    `json:"vendorId"`
	Seq         int       `json:"seq"`
	Track       string    `json:"track"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ActorID     string    `json:"actorId"`
	Note        string    `json:"note,omitempty"`
	Override    bool      `json:"override,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Notifier implements ports.OrderEventNotifier on top of an AMQP channel.
// A channel takes one publish at a time; callers waiting for their turn give
// up when their context ends.
type Notifier struct {
	turn     *semaphore.Weighted
	ch       Publisher
	exchange string
}

func NewNotifier(ch Publisher, exchange string) *Notifier {
	return &Notifier{turn: semaphore.NewWeighted(1), ch: ch, exchange: exchange}
}

// NotifyStatusChanged publishes event as a persistent JSON message. The
// message id is <orderId>:<seq>, which lets consumers drop duplicates.
func (n *Notifier) NotifyStatusChanged(ctx context.Context, event order.StatusChanged) error {
	body, err := json.Marshal(newStatusChangedMessage(event))
	if err != nil {
		return fmt.Errorf("encode status change: %w", err)
	}

	msg := rabbit.Publishing{
		ContentType:  "application/json",
		DeliveryMode: rabbit.Persistent,
		MessageId:    fmt.Sprintf("%s:%d", event.OrderID, event.Seq),
		Timestamp:    event.OccurredAt.UTC(),
		Type:         MessageType,
		Body:         body,
	}

	if err = n.turn.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("wait to publish %s: %w", RoutingKey(event), err)
	}
	defer n.turn.Release(1)
	if err = n.ch.PublishWithContext(ctx, n.exchange, RoutingKey(event), false, false, msg); err != nil {
		return fmt.Errorf("publish %s to %q: %w", RoutingKey(event), n.exchange, err)
	}
	return nil
}

// RoutingKey returns order.<track>.<status> for the event's target status.
func RoutingKey(event order.StatusChanged) string {
	return fmt.Sprintf("order.%s.%s", event.Track, event.To)
}

func newStatusChangedMessage(event order.StatusChanged) StatusChangedMessage {
	return StatusChangedMessage{
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber,
		VendorID:    event.VendorID.String(),
		Seq:         event.Seq,
		Track:       event.Track.String(),
		From:        event.From,
		To:          event.To,
		ActorID:     event.ActorID,
		Note:        event.Note,
		Override:    event.Override,
		OccurredAt:  event.OccurredAt.UTC(),
	}
}
