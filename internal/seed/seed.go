package seed

import (
	"context"
	"errors"
	"time"

	manufacturerdomain "github.com/smallbiznis/railtrack/internal/manufacturer/domain"
	"gorm.io/gorm"
)

const (
	defaultManufacturerID   = "MFG_DEMO"
	defaultManufacturerName = "Demo Rail Works"
)

// EnsureDefaultManufacturer seeds a manufacturer for local development so the
// lot creation flow works out of the box. Idempotent.
func EnsureDefaultManufacturer(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing manufacturerdomain.Manufacturer
		err := tx.Where("manufacturer_id = ?", defaultManufacturerID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		return tx.Create(&manufacturerdomain.Manufacturer{
			ManufacturerID: defaultManufacturerID,
			Name:           defaultManufacturerName,
			CreatedAt:      now,
			UpdatedAt:      now,
		}).Error
	})
}
