package domain

import "time"

type Lot struct {
	LotID          string    `json:"lotId" gorm:"column:lot_id;primaryKey"`
	ManufacturerID string    `json:"manufacturerId" gorm:"column:manufacturer_id;not null;index"`
	ProductType    string    `json:"productType" gorm:"type:text;not null"`
	Quantity       int       `json:"quantity" gorm:"not null"`
	WarrantyMonths int       `json:"warrantyMonths" gorm:"not null"`
	CodePayload    string    `json:"codePayload" gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"createdAt" gorm:"not null;index"`
}

func (Lot) TableName() string { return "lots" }
