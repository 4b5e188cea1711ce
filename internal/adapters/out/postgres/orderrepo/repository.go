package orderrepo

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/pgerrs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entity = "order"

// updatableColumns are the orders columns rewritten by Update. Identity,
// number, vendor, customer and creation time never change.
var updatableColumns = []string{
	"billing_line1", "billing_line2", "billing_city", "billing_region", "billing_postal_code", "billing_country",
	"subtotal", "shipping_fee", "tax", "requested_discount", "discount", "total_amount",
	"fulfillment_status", "payout_status",
	"tracking_carrier", "tracking_number", "tracking_url", "tracking_note",
	"payout_date", "last_updated", "version",
}

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is told about every aggregate written through the
// repository, so that its events can be delivered after commit.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a repository on db, which may be a
// transaction. tracker may be nil for read-only use.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order row, its items and its creation history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return pgerrs.Translate(err, entity, aggregate.ID().String())
	}
	if err := r.insertItems(db, dto.Items); err != nil {
		return pgerrs.Translate(err, entity, aggregate.ID().String())
	}
	if err := r.appendHistory(db, dto.History); err != nil {
		return pgerrs.Translate(err, entity, aggregate.ID().String())
	}

	aggregate.SetVersion(dto.Version)
	r.track(aggregate)
	return nil
}

// Update writes the order if the stored version still matches the one the
// aggregate was loaded with. Items are rewritten; history rows already
// stored are left untouched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	expected := aggregate.Version()
	dto := fromDomain(aggregate)
	dto.Version = expected + 1
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select(updatableColumns).
		Updates(&dto)
	if result.Error != nil {
		return pgerrs.Translate(result.Error, entity, aggregate.ID().String())
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(db, aggregate.ID(), expected)
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&LineItemDTO{}).Error; err != nil {
		return pgerrs.Translate(err, entity, aggregate.ID().String())
	}
	if err := r.insertItems(db, dto.Items); err != nil {
		return pgerrs.Translate(err, entity, aggregate.ID().String())
	}
	if err := r.appendHistory(db, dto.History); err != nil {
		return pgerrs.Translate(err, entity, aggregate.ID().String())
	}

	aggregate.SetVersion(dto.Version)
	r.track(aggregate)
	return nil
}

// Get loads the complete aggregate.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withChildren(r.db.WithContext(ctx)).First(&dto, "id = ?", id.Value()).Error; err != nil {
		return nil, pgerrs.Translate(err, entity, id.String())
	}

	return toDomain(dto)
}

// GetAllInPayoutStatus claims up to limit orders for the surrounding
// transaction with FOR UPDATE SKIP LOCKED.
func (r *GormOrderRepository) GetAllInPayoutStatus(
	ctx context.Context, status order.PayoutStatus, limit int,
) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OrderDTO
	err := r.withChildren(r.db.WithContext(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("payout_status = ?", status.String()).
		Order("last_updated ASC, id ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerrs.Translate(err, entity, "payout status "+status.String())
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Preload("History", func(tx *gorm.DB) *gorm.DB { return tx.Order("seq") })
}

func (r *GormOrderRepository) insertItems(db *gorm.DB, rows []LineItemDTO) error {
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

// appendHistory inserts ledger rows. Rows already present are skipped, so
// the ledger can only ever grow.
func (r *GormOrderRepository) appendHistory(db *gorm.DB, rows []HistoryEntryDTO) error {
	if len(rows) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}, {Name: "seq"}},
		DoNothing: true,
	}).Create(&rows).Error
}

func (r *GormOrderRepository) missingOrStale(db *gorm.DB, id kernel.UUID, expected int) error {
	var count int64
	if err := db.Model(&OrderDTO{}).Where("id = ?", id.Value()).Count(&count).Error; err != nil {
		return pgerrs.Translate(err, entity, id.String())
	}
	if count == 0 {
		return errs.NewObjectNotFoundError(entity, id.String())
	}
	return errs.NewWriteConflictErrorWithCause(entity, id.String(), fmt.Errorf("stored version is not %d", expected))
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}
