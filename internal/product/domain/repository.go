package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	Status         Status
	ManufacturerID string
	LotID          string
	ProductID      string

	// Cursor pagination. Limit 0 means no limit.
	Limit          int
	AfterCreatedAt time.Time
	AfterProductID string
}

type Repository interface {
	CreateBatch(ctx context.Context, db *gorm.DB, products []Product) error
	FindByID(ctx context.Context, db *gorm.DB, productID string) (*Product, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Product, error)
	FindByLot(ctx context.Context, db *gorm.DB, lotID string) ([]Product, error)

	// UpdateStatus flips a single product's status only when it currently
	// holds from, returning the number of rows changed. A zero count means
	// a concurrent writer got there first.
	UpdateStatus(ctx context.Context, db *gorm.DB, productID string, from, to Status) (int64, error)

	// UpdateStatusByLot flips every product of the lot holding from,
	// returning the number of rows changed.
	UpdateStatusByLot(ctx context.Context, db *gorm.DB, lotID string, from, to Status) (int64, error)

	// SetStatusFromInspection applies an inspection verdict last-writer-wins.
	// The terminal needs_replacement state is never overwritten; a zero count
	// with no error means the product was escalated meanwhile.
	SetStatusFromInspection(ctx context.Context, db *gorm.DB, productID string, to Status) (int64, error)
}
