package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/railtrack/internal/receipt/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, receipt *domain.DepotReceipt) error {
	return db.WithContext(ctx).Create(receipt).Error
}

func (r *repo) FindByLot(ctx context.Context, db *gorm.DB, lotID string) (*domain.DepotReceipt, error) {
	var receipt domain.DepotReceipt
	err := db.WithContext(ctx).
		Where("lot_id = ?", lotID).
		First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}
