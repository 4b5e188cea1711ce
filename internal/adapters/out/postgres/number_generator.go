package postgres

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/pkg/pgerrs"

	"gorm.io/gorm"
)

// SequenceOrderNumberGenerator allocates order numbers MK-<year>-<seq> from
// the order_number_seq sequence. Sequence values are never handed out twice,
// even when the surrounding transaction rolls back.
type SequenceOrderNumberGenerator struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSequenceOrderNumberGenerator(db *gorm.DB) *SequenceOrderNumberGenerator {
	return &SequenceOrderNumberGenerator{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (g *SequenceOrderNumberGenerator) Next(ctx context.Context) (string, error) {
	var seq int64
	if err := g.db.WithContext(ctx).Raw("SELECT nextval('order_number_seq')").Scan(&seq).Error; err != nil {
		return "", pgerrs.Translate(err, "order number", "next")
	}
	return FormatOrderNumber(g.now().Year(), seq), nil
}

// FormatOrderNumber renders MK-2026-000042. Sequences past six digits keep
// growing in width.
func FormatOrderNumber(year int, seq int64) string {
	return fmt.Sprintf("MK-%04d-%06d", year, seq)
}
