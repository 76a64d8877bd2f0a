package domain

import (
	"time"

	"gorm.io/datatypes"
)

// InspectionRecord is an append-only field report. The identifier is a ULID,
// so records sort by creation time without a separate sequence column.
type InspectionRecord struct {
	InspectionID   string                      `json:"inspectionId" gorm:"column:inspection_id;primaryKey"`
	ProductID      string                      `json:"productId" gorm:"column:product_id;not null;index"`
	Inspector      string                      `json:"inspector" gorm:"column:inspector;not null"`
	Condition      string                      `json:"condition" gorm:"type:text;not null"`
	VoltageReading float64                     `json:"voltageReading" gorm:"column:voltage_reading"`
	VibrationLevel float64                     `json:"vibrationLevel" gorm:"column:vibration_level"`
	Failure        bool                        `json:"failure" gorm:"not null"`
	Verdict        string                      `json:"verdict" gorm:"type:text;not null"`
	Recommendation string                      `json:"recommendation" gorm:"type:text"`
	Latitude       float64                     `json:"latitude"`
	Longitude      float64                     `json:"longitude"`
	Photos         datatypes.JSONSlice[string] `json:"photos" gorm:"type:text"`
	InspectedAt    time.Time                   `json:"date" gorm:"column:inspected_at;not null;index"`
	CreatedAt      time.Time                   `json:"createdAt" gorm:"not null"`
}

func (InspectionRecord) TableName() string { return "inspection_records" }
