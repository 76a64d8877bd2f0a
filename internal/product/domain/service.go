package domain

import (
	"context"
	"errors"
	"time"

	inspectiondomain "github.com/smallbiznis/railtrack/internal/inspection/domain"
	installationdomain "github.com/smallbiznis/railtrack/internal/installation/domain"
	receiptdomain "github.com/smallbiznis/railtrack/internal/receipt/domain"
	"github.com/smallbiznis/railtrack/pkg/db/pagination"
)

type Service interface {
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Get(ctx context.Context, rawID string) (*DetailResponse, error)
	Escalate(ctx context.Context, req EscalateRequest) (*Response, error)
}

type ListRequest struct {
	Status         string
	ManufacturerID string
	LotID          string
	ProductID      string
	Pagination     pagination.Pagination
}

type Response struct {
	ProductID       string    `json:"productId"`
	LotID           string    `json:"lotId"`
	ManufacturerID  string    `json:"manufacturerId"`
	ProductType     string    `json:"productType"`
	ManufactureDate time.Time `json:"manufactureDate"`
	WarrantyMonths  int       `json:"warrantyMonths"`
	CurrentStatus   Status    `json:"currentStatus"`
	CodePayload     string    `json:"codePayload"`
}

type ListResponse struct {
	Products []Response           `json:"products"`
	PageInfo *pagination.PageInfo `json:"pageInfo"`
}

type DetailResponse struct {
	Product      Response                     `json:"product"`
	Installation *installationdomain.Response `json:"installation,omitempty"`
	DepotReceipt *receiptdomain.Response      `json:"depotReceipt,omitempty"`
	Inspections  []inspectiondomain.Response  `json:"inspections"`
}

type EscalateRequest struct {
	ProductID   string
	EscalatedBy string
}

var (
	ErrInvalidStatusFilter = errors.New("invalid_status")
	ErrInvalidPageToken    = errors.New("invalid_page_token")
)
