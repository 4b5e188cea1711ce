// Package vendorrepo reads vendor display names. Vendors are managed
// elsewhere; this service only ever reads the vendors table.
package vendorrepo

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/pgerrs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorDTO is a row of the vendors table.
type VendorDTO struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	DisplayName string    `gorm:"column:display_name;not null"`
}

func (VendorDTO) TableName() string {
	return "vendors"
}

// GormVendorDirectory implements ports.VendorDirectory.
type GormVendorDirectory struct {
	db *gorm.DB
}

func NewGormVendorDirectory(db *gorm.DB) *GormVendorDirectory {
	return &GormVendorDirectory{db: db}
}

// DisplayNames resolves ids in one query. Duplicates are allowed; unknown
// ids are absent from the result.
func (d *GormVendorDirectory) DisplayNames(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]string, error) {
	names := make(map[kernel.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		v := id.Value()
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		raw = append(raw, v)
	}

	var rows []VendorDTO
	if err := d.db.WithContext(ctx).Where("id IN ?", raw).Find(&rows).Error; err != nil {
		return nil, pgerrs.Translate(err, "vendor", "display names")
	}

	for _, row := range rows {
		id, err := kernel.UUIDFromValue(row.ID)
		if err != nil {
			return nil, err
		}
		names[id] = row.DisplayName
	}
	return names, nil
}

// Upsert creates or renames a vendor. It is used to seed the directory.
func (d *GormVendorDirectory) Upsert(ctx context.Context, id kernel.UUID, displayName string) error {
	row := VendorDTO{ID: id.Value(), DisplayName: displayName}
	err := d.db.WithContext(ctx).Save(&row).Error
	return pgerrs.Translate(err, "vendor", id.String())
}
