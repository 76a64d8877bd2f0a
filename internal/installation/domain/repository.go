package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, record *InstallationRecord) error
	FindLatestByProduct(ctx context.Context, db *gorm.DB, productID string) (*InstallationRecord, error)
}
