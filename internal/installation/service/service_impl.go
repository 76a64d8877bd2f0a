package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/railtrack/internal/identity"
	"github.com/smallbiznis/railtrack/internal/installation/domain"
	"github.com/smallbiznis/railtrack/internal/observability/metrics"
	productdomain "github.com/smallbiznis/railtrack/internal/product/domain"
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
	Products productdomain.Repository
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	products productdomain.Repository
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("installation.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		products: p.Products,
		metrics:  p.Metrics,
	}
}

// Install records a product's field placement and moves it to installed. The
// record insert and status flip commit together; a guarded update that hits
// zero rows means a concurrent event changed the product first.
func (s *Service) Install(ctx context.Context, req domain.InstallRequest) (*domain.InstallResponse, error) {
	location := strings.TrimSpace(req.TrackLocation)
	if location == "" {
		return nil, domain.ErrInvalidLocation
	}
	if req.GPSLocation == nil {
		return nil, domain.ErrInvalidCoordinates
	}
	gps := *req.GPSLocation
	if gps.Lat < -90 || gps.Lat > 90 || gps.Lng < -180 || gps.Lng > 180 {
		return nil, domain.ErrInvalidCoordinates
	}

	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		decoded, err := identity.DecodeProductPayload(req.Scan)
		if err != nil {
			return nil, err
		}
		productID = decoded
	} else if decoded, err := identity.DecodeProductPayload(productID); err == nil {
		productID = decoded
	} else {
		return nil, err
	}

	p, err := s.products.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, productdomain.ErrNotFound
	}
	if err := productdomain.CanInstall(p.CurrentStatus); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &domain.InstallationRecord{
		InstallID:     "INST_" + s.genID.Generate().String(),
		ProductID:     productID,
		TrackLocation: location,
		Latitude:      gps.Lat,
		Longitude:     gps.Lng,
		InstalledBy:   strings.TrimSpace(req.InstalledBy),
		Notes:         strings.TrimSpace(req.Notes),
		InstalledAt:   now,
		CreatedAt:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, record); err != nil {
			return err
		}
		affected, err := s.products.UpdateStatus(ctx, tx, productID,
			productdomain.StatusInStock, productdomain.StatusInstalled)
		if err != nil {
			return err
		}
		if affected == 0 {
			return &productdomain.PreconditionError{Current: p.CurrentStatus, Required: "product in stock"}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordInstall(ctx)
	s.log.Info("product installed",
		zap.String("product_id", productID),
		zap.String("track_location", location),
	)

	return &domain.InstallResponse{
		Installation:  domain.ToResponse(record),
		ProductStatus: string(productdomain.StatusInstalled),
	}, nil
}
