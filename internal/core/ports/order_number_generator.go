package ports

import "context"

// OrderNumberGenerator hands out unique, human readable order numbers.
type OrderNumberGenerator interface {
	Next(ctx context.Context) (string, error)
}
