package service

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/railtrack/internal/identity"
	inspectiondomain "github.com/smallbiznis/railtrack/internal/inspection/domain"
	installationdomain "github.com/smallbiznis/railtrack/internal/installation/domain"
	"github.com/smallbiznis/railtrack/internal/product/domain"
	receiptdomain "github.com/smallbiznis/railtrack/internal/receipt/domain"
	"github.com/smallbiznis/railtrack/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Repo          domain.Repository
	Installations installationdomain.Repository
	Receipts      receiptdomain.Repository
	Inspections   inspectiondomain.Repository
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	repo          domain.Repository
	installations installationdomain.Repository
	receipts      receiptdomain.Repository
	inspections   inspectiondomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("product.service"),
		repo:          p.Repo,
		installations: p.Installations,
		receipts:      p.Receipts,
		inspections:   p.Inspections,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	status := domain.Status(strings.TrimSpace(req.Status))
	if status != "" && !status.Valid() {
		return nil, domain.ErrInvalidStatusFilter
	}

	limit := req.Pagination.PageSize
	if limit <= 0 {
		limit = 50
	}

	filter := domain.ListFilter{
		Status:         status,
		ManufacturerID: strings.TrimSpace(req.ManufacturerID),
		LotID:          strings.TrimSpace(req.LotID),
		ProductID:      strings.TrimSpace(req.ProductID),
		Limit:          limit + 1,
	}

	if token := strings.TrimSpace(req.Pagination.PageToken); token != "" {
		cursor, err := pagination.DecodeCursor(token)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		after, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		filter.AfterCreatedAt = after
		filter.AfterProductID = cursor.ID
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	items, pageInfo, err := pagination.BuildCursorPageInfo(items, limit, func(p domain.Product) pagination.Cursor {
		return pagination.Cursor{ID: p.ProductID, CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339Nano)}
	})
	if err != nil {
		return nil, err
	}

	resp := &domain.ListResponse{
		Products: make([]domain.Response, 0, len(items)),
		PageInfo: pageInfo,
	}
	for _, item := range items {
		resp.Products = append(resp.Products, toResponse(&item))
	}
	return resp, nil
}

// Get resolves either a bare product identifier or a raw scanned code and
// assembles the full field history.
func (s *Service) Get(ctx context.Context, rawID string) (*domain.DetailResponse, error) {
	productID, err := identity.DecodeProductPayload(rawID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	detail := &domain.DetailResponse{
		Product:     toResponse(p),
		Inspections: []inspectiondomain.Response{},
	}

	if receipt, err := s.receipts.FindByLot(ctx, s.db, p.LotID); err != nil {
		return nil, err
	} else if receipt != nil {
		r := receiptdomain.ToResponse(receipt)
		detail.DepotReceipt = &r
	}

	if install, err := s.installations.FindLatestByProduct(ctx, s.db, p.ProductID); err != nil {
		return nil, err
	} else if install != nil {
		i := installationdomain.ToResponse(install)
		detail.Installation = &i
	}

	records, err := s.inspections.FindByProduct(ctx, s.db, p.ProductID)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		detail.Inspections = append(detail.Inspections, inspectiondomain.ToResponse(&rec))
	}

	return detail, nil
}

func (s *Service) Escalate(ctx context.Context, req domain.EscalateRequest) (*domain.Response, error) {
	productID := strings.TrimSpace(req.ProductID)
	p, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	if err := domain.CanEscalate(p.CurrentStatus); err != nil {
		return nil, err
	}

	affected, err := s.repo.UpdateStatus(ctx, s.db, productID, domain.StatusFailure, domain.StatusNeedsReplacement)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Lost a race with a concurrent transition; re-read and report.
		return nil, &domain.PreconditionError{Current: p.CurrentStatus, Required: "failed inspection"}
	}

	s.log.Info("product escalated for replacement",
		zap.String("product_id", productID),
		zap.String("escalated_by", strings.TrimSpace(req.EscalatedBy)),
	)

	p.CurrentStatus = domain.StatusNeedsReplacement
	resp := toResponse(p)
	return &resp, nil
}

func toResponse(p *domain.Product) domain.Response {
	return domain.Response{
		ProductID:       p.ProductID,
		LotID:           p.LotID,
		ManufacturerID:  p.ManufacturerID,
		ProductType:     p.ProductType,
		ManufactureDate: p.ManufactureDate,
		WarrantyMonths:  p.WarrantyMonths,
		CurrentStatus:   p.CurrentStatus,
		CodePayload:     p.CodePayload,
	}
}
