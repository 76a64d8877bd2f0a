package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/railtrack/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CreateBatch(ctx context.Context, db *gorm.DB, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&products).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, productID string) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Product, error) {
	stmt := db.WithContext(ctx).Model(&domain.Product{})

	if filter.Status != "" {
		stmt = stmt.Where("current_status = ?", filter.Status)
	}
	if filter.ManufacturerID != "" {
		stmt = stmt.Where("manufacturer_id = ?", filter.ManufacturerID)
	}
	if filter.LotID != "" {
		stmt = stmt.Where("lot_id = ?", filter.LotID)
	}
	if filter.ProductID != "" {
		stmt = stmt.Where("product_id = ?", filter.ProductID)
	}
	if !filter.AfterCreatedAt.IsZero() && filter.AfterProductID != "" {
		stmt = stmt.Where(
			"created_at > ? OR (created_at = ? AND product_id > ?)",
			filter.AfterCreatedAt, filter.AfterCreatedAt, filter.AfterProductID,
		)
	}

	stmt = stmt.Order("created_at ASC, product_id ASC")
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}

	var items []domain.Product
	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindByLot(ctx context.Context, db *gorm.DB, lotID string) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).
		Where("lot_id = ?", lotID).
		Order("product_id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, productID string, from, to domain.Status) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE products SET current_status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE product_id = ? AND current_status = ?`,
		to,
		productID,
		from,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) SetStatusFromInspection(ctx context.Context, db *gorm.DB, productID string, to domain.Status) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE products SET current_status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE product_id = ? AND current_status <> ?`,
		to,
		productID,
		domain.StatusNeedsReplacement,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) UpdateStatusByLot(ctx context.Context, db *gorm.DB, lotID string, from, to domain.Status) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE products SET current_status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE lot_id = ? AND current_status = ?`,
		to,
		lotID,
		from,
	)
	return res.RowsAffected, res.Error
}
