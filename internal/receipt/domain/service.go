package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Receive(ctx context.Context, req ReceiveRequest) (*ReceiveResponse, error)
}

// ReceiveRequest accepts either an explicit lot identifier or the raw scanned
// package payload; when both are present the explicit identifier wins.
type ReceiveRequest struct {
	LotID     string `json:"lotId"`
	Scan      string `json:"scan"`
	DepotID   string `json:"depotId"`
	Inspector string `json:"inspector"`
	Notes     string `json:"notes"`
}

type Response struct {
	ReceiptID  string    `json:"receiptId"`
	LotID      string    `json:"lotId"`
	DepotID    string    `json:"depotId"`
	Inspector  string    `json:"inspector"`
	Notes      string    `json:"notes,omitempty"`
	ReceivedAt time.Time `json:"receivedAt"`
}

type ReceiveResponse struct {
	Receipt        Response `json:"receipt"`
	ProductsMarked int64    `json:"productsMarked"`
}

var (
	ErrInvalidDepot    = errors.New("invalid_depot")
	ErrLotNotFound     = errors.New("lot_not_found")
	ErrAlreadyReceived = errors.New("lot_already_received")
)

func ToResponse(r *DepotReceipt) Response {
	return Response{
		ReceiptID:  r.ReceiptID,
		LotID:      r.LotID,
		DepotID:    r.DepotID,
		Inspector:  r.Inspector,
		Notes:      r.Notes,
		ReceivedAt: r.ReceivedAt,
	}
}
