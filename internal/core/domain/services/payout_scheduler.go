package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/order"
)

// ErrPayoutHookFailed wraps any error returned by the completion hook.
var ErrPayoutHookFailed = errors.New("payout completion hook failed")

// PayoutCompletionHook is called before an order's payout is marked
// completed. It is where real fund transfer would be triggered.
type PayoutCompletionHook interface {
	OnPayoutCompleted(ctx context.Context, o *order.Order) error
}

// PayoutScheduler moves orders along the payout track and makes sure the
// completion hook has succeeded before an order can be considered paid.
//
// Business rules:
//   - The requested transition is validated before the hook runs
//   - The hook runs only when entering completed, not on a repeated
//     completed request
//   - A failing hook leaves the order untouched
//
// Example usage:
//
//	scheduler := NewPayoutScheduler(disburser)
//	changed, err := scheduler.Transition(ctx, o, order.PayoutCompleted, actor, "", now)
//	if errors.Is(err, ErrPayoutHookFailed) {
//	    // nothing was changed, the caller may retry later
//	}
type PayoutScheduler struct {
	hook PayoutCompletionHook
}

// NewPayoutScheduler returns a scheduler. A nil hook means completing a
// payout only stamps the payout date.
func NewPayoutScheduler(hook PayoutCompletionHook) PayoutScheduler {
	return PayoutScheduler{hook: hook}
}

// Transition applies a payout status change. The returned bool is false
// when the request was a same-status no-op.
func (s PayoutScheduler) Transition(
	ctx context.Context, o *order.Order, target order.PayoutStatus, actor order.Actor, note string, now time.Time,
) (bool, error) {
	if err := o.ValidatePayoutTransition(target); err != nil {
		return false, err
	}

	if target == order.PayoutCompleted && o.PayoutStatus() != order.PayoutCompleted && s.hook != nil {
		if err := s.hook.OnPayoutCompleted(ctx, o); err != nil {
			return false, fmt.Errorf("%w: order %s: %w", ErrPayoutHookFailed, o.Number(), err)
		}
	}

	return o.UpdatePayoutStatus(target, actor, note, now)
}
