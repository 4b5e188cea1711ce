package order

import (
	"net/url"
	"strings"

	"marketplace/internal/pkg/errs"
)

// TrackingInfo describes the shipment of an order.
type TrackingInfo struct {
	carrier string
	number  string
	url     string
	note    string
}

// RestoreTrackingInfo rebuilds stored tracking details without validation.
func RestoreTrackingInfo(carrier, number, trackingURL, note string) TrackingInfo {
	return TrackingInfo{carrier: carrier, number: number, url: trackingURL, note: note}
}

func (t TrackingInfo) Carrier() string { return t.carrier }
func (t TrackingInfo) Number() string { return t.number }
func (t TrackingInfo) URL() string { return t.url }
func (t TrackingInfo) Note() string { return t.note }

func (t TrackingInfo) IsZero() bool {
	return t == TrackingInfo{}
}

// TrackingUpdate carries a partial change to TrackingInfo. Nil fields keep
// their previous value.
type TrackingUpdate struct {
	Carrier *string
	Number  *string
	URL     *string
	Note    *string
}

func (u TrackingUpdate) IsEmpty() bool {
	return u.Carrier == nil && u.Number == nil && u.URL == nil && u.Note == nil
}

// Validate checks the tracking URL, when one is given, is absolute http(s).
func (u TrackingUpdate) Validate() error {
	if u.URL == nil || strings.TrimSpace(*u.URL) == "" {
		return nil
	}
	parsed, err := url.ParseRequestURI(strings.TrimSpace(*u.URL))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("tracking url", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errs.NewValueIsInvalidError("tracking url")
	}
	return nil
}

// merge applies the set-if-present semantics of TrackingUpdate.
func (t TrackingInfo) merge(u TrackingUpdate) TrackingInfo {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&t.carrier, u.Carrier)
	set(&t.number, u.Number)
	set(&t.url, u.URL)
	set(&t.note, u.Note)
	return t
}
