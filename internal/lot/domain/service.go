package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResponse, error)
	ListByManufacturer(ctx context.Context, manufacturerID string) ([]Response, error)
}

type CreateRequest struct {
	ManufacturerID string `json:"manufacturerId"`
	ProductType    string `json:"productType"`
	Quantity       int    `json:"quantity"`
	WarrantyMonths int    `json:"warrantyMonths"`
}

type ProductSummary struct {
	ProductID     string `json:"productId"`
	CurrentStatus string `json:"currentStatus"`
}

type Response struct {
	LotID          string           `json:"lotId"`
	ManufacturerID string           `json:"manufacturerId"`
	ProductType    string           `json:"productType"`
	Quantity       int              `json:"quantity"`
	WarrantyMonths int              `json:"warrantyMonths"`
	CreatedAt      time.Time        `json:"createdAt"`
	Products       []ProductSummary `json:"products,omitempty"`
}

// CreateResponse carries everything a label printer needs: the lot, its
// package code payload and one code per product.
type CreateResponse struct {
	Lot          Response `json:"lot"`
	ProductIDs   []string `json:"productIds"`
	ProductCodes []string `json:"productCodes"`
	PackageCode  string   `json:"packageCode"`
}

var (
	ErrInvalidQuantity       = errors.New("invalid_quantity")
	ErrInvalidProductType    = errors.New("invalid_product_type")
	ErrInvalidWarrantyMonths = errors.New("invalid_warranty_months")
	ErrManufacturerNotFound  = errors.New("manufacturer_not_found")
	ErrNotFound              = errors.New("lot_not_found")
)
