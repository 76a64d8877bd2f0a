package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, receipt *DepotReceipt) error
	FindByLot(ctx context.Context, db *gorm.DB, lotID string) (*DepotReceipt, error)
}
