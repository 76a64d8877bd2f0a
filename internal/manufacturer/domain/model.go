package domain

import "time"

type Manufacturer struct {
	ManufacturerID string    `json:"manufacturerId" gorm:"column:manufacturer_id;primaryKey"`
	Name           string    `json:"name" gorm:"type:text;not null"`
	ContactEmail   string    `json:"-" gorm:"column:contact_email;type:text"`
	ContactPhone   string    `json:"-" gorm:"column:contact_phone;type:text"`
	PublicKey      string    `json:"publicKey" gorm:"type:text"`
	CreatedAt      time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"not null"`
}

func (Manufacturer) TableName() string { return "manufacturers" }
