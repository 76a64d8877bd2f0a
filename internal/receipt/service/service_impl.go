package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/railtrack/internal/identity"
	lotdomain "github.com/smallbiznis/railtrack/internal/lot/domain"
	"github.com/smallbiznis/railtrack/internal/observability/metrics"
	productdomain "github.com/smallbiznis/railtrack/internal/product/domain"
	"github.com/smallbiznis/railtrack/internal/receipt/domain"
	"github.com/smallbiznis/railtrack/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Lots     lotdomain.Repository
	Products productdomain.Repository
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	lots     lotdomain.Repository
	products productdomain.Repository
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("receipt.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		lots:     p.Lots,
		products: p.Products,
		metrics:  p.Metrics,
	}
}

// Receive marks a scanned lot as arrived at a depot and flips every product
// still in the manufactured state to in_stock. The receipt insert and the
// status flip commit together; a duplicate-key rejection on the receipt means
// another request already received this lot, and nothing is changed.
func (s *Service) Receive(ctx context.Context, req domain.ReceiveRequest) (*domain.ReceiveResponse, error) {
	depotID := strings.TrimSpace(req.DepotID)
	if depotID == "" {
		return nil, domain.ErrInvalidDepot
	}

	lotID := strings.TrimSpace(req.LotID)
	if lotID == "" {
		decoded, err := identity.DecodeLotPayload(req.Scan)
		if err != nil {
			return nil, err
		}
		lotID = decoded
	}

	lot, err := s.lots.FindByID(ctx, s.db, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrLotNotFound
	}

	now := time.Now().UTC()
	receipt := &domain.DepotReceipt{
		ReceiptID:  "RCV_" + s.genID.Generate().String(),
		LotID:      lotID,
		DepotID:    depotID,
		Inspector:  strings.TrimSpace(req.Inspector),
		Notes:      strings.TrimSpace(req.Notes),
		ReceivedAt: now,
		CreatedAt:  now,
	}

	var marked int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, receipt); err != nil {
			return err
		}
		n, err := s.products.UpdateStatusByLot(ctx, tx, lotID,
			productdomain.StatusManufactured, productdomain.StatusInStock)
		if err != nil {
			return err
		}
		marked = n
		return nil
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrAlreadyReceived
		}
		return nil, err
	}

	s.metrics.RecordLotReceived(ctx, depotID)
	s.log.Info("lot received at depot",
		zap.String("lot_id", lotID),
		zap.String("depot_id", depotID),
		zap.Int64("products_marked", marked),
	)

	return &domain.ReceiveResponse{
		Receipt:        domain.ToResponse(receipt),
		ProductsMarked: marked,
	}, nil
}
