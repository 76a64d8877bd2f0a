package repository

import (
	"context"

	"github.com/smallbiznis/railtrack/internal/inspection/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, record *domain.InspectionRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) FindByProduct(ctx context.Context, db *gorm.DB, productID string) ([]domain.InspectionRecord, error) {
	var records []domain.InspectionRecord
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("inspected_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
