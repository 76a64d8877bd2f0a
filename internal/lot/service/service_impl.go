package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/railtrack/internal/identity"
	"github.com/smallbiznis/railtrack/internal/lot/domain"
	manufacturerdomain "github.com/smallbiznis/railtrack/internal/manufacturer/domain"
	"github.com/smallbiznis/railtrack/internal/observability/metrics"
	productdomain "github.com/smallbiznis/railtrack/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	GenID         *snowflake.Node
	Repo          domain.Repository
	Products      productdomain.Repository
	Manufacturers manufacturerdomain.Repository
	Metrics       *metrics.Metrics `optional:"true"`
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	genID         *snowflake.Node
	repo          domain.Repository
	products      productdomain.Repository
	manufacturers manufacturerdomain.Repository
	metrics       *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("lot.service"),
		genID:         p.GenID,
		repo:          p.Repo,
		products:      p.Products,
		manufacturers: p.Manufacturers,
		metrics:       p.Metrics,
	}
}

// Create provisions a lot and its products in one transaction. Readers never
// observe a lot without its full product set.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.CreateResponse, error) {
	manufacturerID := strings.TrimSpace(req.ManufacturerID)
	productType := strings.TrimSpace(req.ProductType)
	if productType == "" {
		return nil, domain.ErrInvalidProductType
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if req.WarrantyMonths < 0 {
		return nil, domain.ErrInvalidWarrantyMonths
	}

	m, err := s.manufacturers.FindByID(ctx, s.db, manufacturerID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrManufacturerNotFound
	}

	now := time.Now().UTC()
	lotID := identity.NewLotID(s.genID)

	packageCode, err := identity.EncodeLotPayload(identity.LotPayload{
		LotID:          lotID,
		ManufacturerID: manufacturerID,
		ProductType:    productType,
		Quantity:       req.Quantity,
	})
	if err != nil {
		return nil, err
	}

	lot := &domain.Lot{
		LotID:          lotID,
		ManufacturerID: manufacturerID,
		ProductType:    productType,
		Quantity:       req.Quantity,
		WarrantyMonths: req.WarrantyMonths,
		CodePayload:    packageCode,
		CreatedAt:      now,
	}

	products := make([]productdomain.Product, 0, req.Quantity)
	productIDs := make([]string, 0, req.Quantity)
	productCodes := make([]string, 0, req.Quantity)
	for ordinal := 0; ordinal < req.Quantity; ordinal++ {
		productID := identity.ProductID(lotID, ordinal)
		code := identity.EncodeProductPayload(productID)
		products = append(products, productdomain.Product{
			ProductID:       productID,
			LotID:           lotID,
			ManufacturerID:  manufacturerID,
			ProductType:     productType,
			ManufactureDate: now,
			WarrantyMonths:  req.WarrantyMonths,
			CurrentStatus:   productdomain.StatusManufactured,
			CodePayload:     code,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		productIDs = append(productIDs, productID)
		productCodes = append(productCodes, code)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, lot); err != nil {
			return err
		}
		return s.products.CreateBatch(ctx, tx, products)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordLotCreated(ctx, productType, req.Quantity)
	s.log.Info("lot provisioned",
		zap.String("lot_id", lotID),
		zap.String("manufacturer_id", manufacturerID),
		zap.Int("quantity", req.Quantity),
	)

	return &domain.CreateResponse{
		Lot:          toResponse(lot, nil),
		ProductIDs:   productIDs,
		ProductCodes: productCodes,
		PackageCode:  packageCode,
	}, nil
}

func (s *Service) ListByManufacturer(ctx context.Context, manufacturerID string) ([]domain.Response, error) {
	manufacturerID = strings.TrimSpace(manufacturerID)
	m, err := s.manufacturers.FindByID(ctx, s.db, manufacturerID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrManufacturerNotFound
	}

	lots, err := s.repo.FindByManufacturer(ctx, s.db, manufacturerID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(lots))
	for i := range lots {
		items, err := s.products.FindByLot(ctx, s.db, lots[i].LotID)
		if err != nil {
			return nil, err
		}
		summaries := make([]domain.ProductSummary, 0, len(items))
		for _, p := range items {
			summaries = append(summaries, domain.ProductSummary{
				ProductID:     p.ProductID,
				CurrentStatus: string(p.CurrentStatus),
			})
		}
		resp = append(resp, toResponse(&lots[i], summaries))
	}
	return resp, nil
}

func toResponse(lot *domain.Lot, products []domain.ProductSummary) domain.Response {
	return domain.Response{
		LotID:          lot.LotID,
		ManufacturerID: lot.ManufacturerID,
		ProductType:    lot.ProductType,
		Quantity:       lot.Quantity,
		WarrantyMonths: lot.WarrantyMonths,
		CreatedAt:      lot.CreatedAt,
		Products:       products,
	}
}
