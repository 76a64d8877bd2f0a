package domain

import "time"

// DepotReceipt records a lot's arrival at a depot. The unique index on lot_id
// is the idempotency guard: a lot can be received exactly once, and concurrent
// submissions are arbitrated by the store rather than by a read-then-write.
type DepotReceipt struct {
	ReceiptID  string    `json:"receiptId" gorm:"column:receipt_id;primaryKey"`
	LotID      string    `json:"lotId" gorm:"column:lot_id;not null;uniqueIndex"`
	DepotID    string    `json:"depotId" gorm:"column:depot_id;not null;index"`
	Inspector  string    `json:"inspector" gorm:"column:inspector;not null"`
	Notes      string    `json:"notes" gorm:"type:text"`
	ReceivedAt time.Time `json:"receivedAt" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"not null"`
}

func (DepotReceipt) TableName() string { return "depot_receipts" }
