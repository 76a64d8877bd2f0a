package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, record *InspectionRecord) error

	// FindByProduct returns the product's inspection history newest first.
	FindByProduct(ctx context.Context, db *gorm.DB, productID string) ([]InspectionRecord, error)
}
