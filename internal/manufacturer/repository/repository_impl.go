package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/railtrack/internal/manufacturer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, m *domain.Manufacturer) error {
	return db.WithContext(ctx).Create(m).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, manufacturerID string) (*domain.Manufacturer, error) {
	var m domain.Manufacturer
	err := db.WithContext(ctx).
		Where("manufacturer_id = ?", manufacturerID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, m *domain.Manufacturer) error {
	return db.WithContext(ctx).Exec(
		`UPDATE manufacturers SET contact_email = ?, contact_phone = ?, updated_at = ? WHERE manufacturer_id = ?`,
		m.ContactEmail,
		m.ContactPhone,
		m.UpdatedAt,
		m.ManufacturerID,
	).Error
}
