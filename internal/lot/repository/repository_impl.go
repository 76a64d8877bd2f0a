package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/railtrack/internal/lot/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, lot *domain.Lot) error {
	return db.WithContext(ctx).Create(lot).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, lotID string) (*domain.Lot, error) {
	var lot domain.Lot
	err := db.WithContext(ctx).
		Where("lot_id = ?", lotID).
		First(&lot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *repo) FindByManufacturer(ctx context.Context, db *gorm.DB, manufacturerID string) ([]domain.Lot, error) {
	var items []domain.Lot
	err := db.WithContext(ctx).
		Where("manufacturer_id = ?", manufacturerID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
