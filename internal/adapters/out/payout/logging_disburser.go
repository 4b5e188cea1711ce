// Package payout contains the disburser wired in place of a payment
// provider. It records the payout and always succeeds.
package payout

import (
	"context"

	"marketplace/internal/core/domain/model/order"

	"go.uber.org/zap"
)

type LoggingDisburser struct {
	log *zap.Logger
}

func NewLoggingDisburser(log *zap.Logger) *LoggingDisburser {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingDisburser{log: log.With(zap.String("component", "payout"))}
}

func (d *LoggingDisburser) OnPayoutCompleted(ctx context.Context, o *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.log.Info("vendor payout disbursed",
		zap.String("orderId", o.ID().String()),
		zap.String("orderNumber", o.Number()),
		zap.String("vendorId", o.VendorID().String()),
		zap.String("amount", o.Financials().TotalAmount().String()),
	)
	return nil
}
