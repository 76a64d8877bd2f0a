package domain

import "time"

// InstallationRecord pins a product to a physical track location. A product
// carries at most one active installation; FindLatestByProduct returns the
// newest record when history exists.
type InstallationRecord struct {
	InstallID     string    `json:"installId" gorm:"column:install_id;primaryKey"`
	ProductID     string    `json:"productId" gorm:"column:product_id;not null;index"`
	TrackLocation string    `json:"trackLocation" gorm:"column:track_location;type:text;not null"`
	Latitude      float64   `json:"latitude" gorm:"not null"`
	Longitude     float64   `json:"longitude" gorm:"not null"`
	InstalledBy   string    `json:"installedBy" gorm:"column:installed_by;not null"`
	Notes         string    `json:"notes" gorm:"type:text"`
	InstalledAt   time.Time `json:"installedAt" gorm:"not null"`
	CreatedAt     time.Time `json:"createdAt" gorm:"not null"`
}

func (InstallationRecord) TableName() string { return "installation_records" }
