package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// VendorDirectory resolves vendor display names for listings. Unknown ids
// are simply absent from the result.
type VendorDirectory interface {
	DisplayNames(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]string, error)
}
