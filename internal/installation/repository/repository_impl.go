package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/railtrack/internal/installation/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, record *domain.InstallationRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) FindLatestByProduct(ctx context.Context, db *gorm.DB, productID string) (*domain.InstallationRecord, error) {
	var record domain.InstallationRecord
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("installed_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
