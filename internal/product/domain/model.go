package domain

import "time"

type Product struct {
	ProductID       string    `json:"productId" gorm:"column:product_id;primaryKey"`
	LotID           string    `json:"lotId" gorm:"column:lot_id;not null;index"`
	ManufacturerID  string    `json:"manufacturerId" gorm:"column:manufacturer_id;not null;index"`
	ProductType     string    `json:"productType" gorm:"type:text;not null"`
	ManufactureDate time.Time `json:"manufactureDate" gorm:"not null"`
	WarrantyMonths  int       `json:"warrantyMonths" gorm:"not null"`
	CurrentStatus   Status    `json:"currentStatus" gorm:"column:current_status;type:text;not null;index"`
	CodePayload     string    `json:"codePayload" gorm:"type:text;not null"`
	CreatedAt       time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"not null"`
}

func (Product) TableName() string { return "products" }
