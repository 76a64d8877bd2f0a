package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, lot *Lot) error
	FindByID(ctx context.Context, db *gorm.DB, lotID string) (*Lot, error)
	FindByManufacturer(ctx context.Context, db *gorm.DB, manufacturerID string) ([]Lot, error)
}
