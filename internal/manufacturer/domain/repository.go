package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, m *Manufacturer) error
	FindByID(ctx context.Context, db *gorm.DB, manufacturerID string) (*Manufacturer, error)
	Update(ctx context.Context, db *gorm.DB, m *Manufacturer) error
}
