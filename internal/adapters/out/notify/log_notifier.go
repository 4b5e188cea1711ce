// Package notify holds the notifier used when no message broker is
// configured: status changes are written to the application log.
package notify

import (
	"context"

	"marketplace/internal/core/domain/model/order"

	"go.uber.org/zap"
)

type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log.With(zap.String("component", "notifier"))}
}

func (n *LogNotifier) NotifyStatusChanged(_ context.Context, event order.StatusChanged) error {
	n.log.Info("order status changed",
		zap.String("orderId", event.OrderID.String()),
		zap.String("orderNumber", event.OrderNumber),
		zap.String("vendorId", event.VendorID.String()),
		zap.String("track", event.Track.String()),
		zap.String("from", event.From),
		zap.String("to", event.To),
		zap.Int("seq", event.Seq),
		zap.String("actorId", event.ActorID),
		zap.Bool("override", event.Override),
		zap.Time("occurredAt", event.OccurredAt),
	)
	return nil
}
