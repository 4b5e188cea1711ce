package order

import (
	"errors"
	"fmt"
	"slices"
)

// ErrIllegalTransition is matched by every *IllegalTransitionError.
var ErrIllegalTransition = errors.New("illegal status transition")

// Track names one of the two independent status machines of an order.
type Track int

const (
	TrackUnknown Track = iota
	TrackFulfillment
	TrackPayout
)

func (t Track) String() string {
	switch t {
	case TrackFulfillment:
		return "fulfillment"
	case TrackPayout:
		return "payout"
	default:
		return "unknown"
	}
}

// ParseTrack maps "fulfillment" or "payout" back to a Track.
func ParseTrack(s string) (Track, error) {
	switch s {
	case "fulfillment":
		return TrackFulfillment, nil
	case "payout":
		return TrackPayout, nil
	default:
		return TrackUnknown, fmt.Errorf("%q is not a status track", s)
	}
}

// IllegalTransitionError carries enough context for callers to tell the
// client which moves would have been accepted.
type IllegalTransitionError struct {
	Track Track
	From  string
	To    string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s %s -> %s", ErrIllegalTransition, e.Track, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Allowed returns the targets reachable from From on the same track.
func (e *IllegalTransitionError) Allowed() []string {
	return AllowedTransitions(e.Track, e.From)
}

// Self-transitions are listed explicitly so that the tables stay the single
// source of truth for what a status update may do.
var fulfillmentTransitions = map[FulfillmentStatus][]FulfillmentStatus{
	FulfillmentPending:   {FulfillmentPending, FulfillmentConfirmed, FulfillmentCancelled},
	FulfillmentConfirmed: {FulfillmentConfirmed, FulfillmentShipped, FulfillmentCancelled},
	FulfillmentShipped:   {FulfillmentShipped, FulfillmentDelivered, FulfillmentCancelled},
	FulfillmentDelivered: {FulfillmentDelivered, FulfillmentRefunded},
	FulfillmentCancelled: {FulfillmentCancelled},
	FulfillmentRefunded:  {FulfillmentRefunded},
}

var payoutTransitions = map[PayoutStatus][]PayoutStatus{
	PayoutPending:    {PayoutPending, PayoutProcessing, PayoutFailed},
	PayoutProcessing: {PayoutProcessing, PayoutCompleted, PayoutFailed},
	PayoutFailed:     {PayoutFailed, PayoutProcessing},
	PayoutCompleted:  {PayoutCompleted},
}

// NextStatuses lists every status reachable from s, including s itself.
func (s FulfillmentStatus) NextStatuses() []FulfillmentStatus {
	return slices.Clone(fulfillmentTransitions[s])
}

func (s FulfillmentStatus) CanTransitionTo(target FulfillmentStatus) bool {
	return slices.Contains(fulfillmentTransitions[s], target)
}

// ValidateTransition returns an *IllegalTransitionError when the table has
// no edge from s to target, and a validation error when target is not a
// fulfillment status at all.
func (s FulfillmentStatus) ValidateTransition(target FulfillmentStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(target) {
		return &IllegalTransitionError{Track: TrackFulfillment, From: s.String(), To: target.String()}
	}
	return nil
}

func (s PayoutStatus) NextStatuses() []PayoutStatus {
	return slices.Clone(payoutTransitions[s])
}

func (s PayoutStatus) CanTransitionTo(target PayoutStatus) bool {
	return slices.Contains(payoutTransitions[s], target)
}

func (s PayoutStatus) ValidateTransition(target PayoutStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(target) {
		return &IllegalTransitionError{Track: TrackPayout, From: s.String(), To: target.String()}
	}
	return nil
}

// ValidateTransition checks a move on either track using wire names. It is
// pure: the same inputs always give the same answer.
func ValidateTransition(track Track, from, to string) error {
	switch track {
	case TrackFulfillment:
		current, err := ParseFulfillmentStatus(from)
		if err != nil {
			return err
		}
		target, err := ParseFulfillmentStatus(to)
		if err != nil {
			return err
		}
		return current.ValidateTransition(target)
	case TrackPayout:
		current, err := ParsePayoutStatus(from)
		if err != nil {
			return err
		}
		target, err := ParsePayoutStatus(to)
		if err != nil {
			return err
		}
		return current.ValidateTransition(target)
	default:
		return fmt.Errorf("%w: unknown track %d", ErrIllegalTransition, track)
	}
}

// AllowedTransitions returns the wire names of the statuses reachable from
// the given one, or nil when from is not a status of track.
func AllowedTransitions(track Track, from string) []string {
	var out []string
	switch track {
	case TrackFulfillment:
		current, err := ParseFulfillmentStatus(from)
		if err != nil {
			return nil
		}
		for _, s := range current.NextStatuses() {
			out = append(out, s.String())
		}
	case TrackPayout:
		current, err := ParsePayoutStatus(from)
		if err != nil {
			return nil
		}
		for _, s := range current.NextStatuses() {
			out = append(out, s.String())
		}
	}
	return out
}
