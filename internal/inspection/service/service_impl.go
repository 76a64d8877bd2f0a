package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/railtrack/internal/identity"
	"github.com/smallbiznis/railtrack/internal/inspection/domain"
	"github.com/smallbiznis/railtrack/internal/observability/metrics"
	productdomain "github.com/smallbiznis/railtrack/internal/product/domain"
	"github.com/smallbiznis/railtrack/internal/providers/imagestore"
	"github.com/smallbiznis/railtrack/internal/providers/recommend"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Repo        domain.Repository
	Products    productdomain.Repository
	Recommender recommend.Provider
	Images      imagestore.Provider
	Metrics     *metrics.Metrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	repo        domain.Repository
	products    productdomain.Repository
	recommender recommend.Provider
	images      imagestore.Provider
	classifier  domain.Classifier
	metrics     *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("inspection.service"),
		repo:        p.Repo,
		products:    p.Products,
		recommender: p.Recommender,
		images:      p.Images,
		classifier:  domain.HeuristicClassifier{},
		metrics:     p.Metrics,
	}
}

// Submit appends an inspection report and reclassifies the product. The
// record append and the status transition commit together; the transition
// is derived from the product row re-read inside the transaction, so
// concurrent submissions serialize last-writer-wins and every record is
// kept. Collaborator calls (recommendation model, photo host) are
// advisory: their failure never fails the submission.
func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (*domain.SubmitResponse, error) {
	condition := strings.TrimSpace(req.Results.Condition)
	if condition == "" {
		return nil, domain.ErrInvalidCondition
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
	if err := productdomain.CanInspect(p.CurrentStatus); err != nil {
		return nil, err
	}

	voltage := parseReading(req.Results.Voltage)
	vibration := parseReading(req.Results.Vibration)

	recommendation := strings.TrimSpace(req.Recommendation)
	if recommendation == "" {
		recommendation = s.fetchRecommendation(ctx, productID, condition, voltage, vibration)
	}

	photos := s.resolvePhotos(ctx, productID, req.Photos)

	failed := s.classifier.Failed(condition, recommendation)
	verdict := string(productdomain.StatusInCondition)
	if failed {
		verdict = string(productdomain.StatusFailure)
	}

	now := time.Now().UTC()
	record := &domain.InspectionRecord{
		InspectionID:   ulid.Make().String(),
		ProductID:      productID,
		Inspector:      strings.TrimSpace(req.Inspector),
		Condition:      condition,
		VoltageReading: voltage,
		VibrationLevel: vibration,
		Failure:        req.Failure,
		Verdict:        verdict,
		Recommendation: recommendation,
		Photos:         datatypes.JSONSlice[string](photos),
		InspectedAt:    now,
		CreatedAt:      now,
	}
	if req.GPSLocation != nil {
		record.Latitude = req.GPSLocation.Lat
		record.Longitude = req.GPSLocation.Lng
	}

	var next productdomain.Status
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The pre-transaction read only gated the collaborator calls; a
		// concurrent submission may have moved the status since, so the
		// transition must come from the row as this transaction sees it.
		fresh, err := s.products.FindByID(ctx, tx, productID)
		if err != nil {
			return err
		}
		if fresh == nil {
			return productdomain.ErrNotFound
		}
		if err := productdomain.CanInspect(fresh.CurrentStatus); err != nil {
			return err
		}
		next = productdomain.NextAfterInspection(fresh.CurrentStatus, failed)

		if err := s.repo.Create(ctx, tx, record); err != nil {
			return err
		}
		if next == fresh.CurrentStatus {
			return nil
		}
		affected, err := s.products.SetStatusFromInspection(ctx, tx, productID, next)
		if err != nil {
			return err
		}
		if affected == 0 {
			// Escalated by a concurrent writer; the record stands and the
			// terminal state stays put.
			next = productdomain.StatusNeedsReplacement
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordInspection(ctx, verdict)
	s.log.Info("inspection recorded",
		zap.String("product_id", productID),
		zap.String("verdict", verdict),
		zap.String("status", string(next)),
	)

	return &domain.SubmitResponse{
		Inspection: domain.ToResponse(record),
		Product: domain.ProductSummary{
			ProductID:     productID,
			CurrentStatus: string(next),
		},
	}, nil
}

// Predictions proxies the failure predictor. Absence of the collaborator or a
// bad answer yields an empty slice.
func (s *Service) Predictions(ctx context.Context, productID string) ([]string, error) {
	productID = strings.TrimSpace(productID)
	if decoded, err := identity.DecodeProductPayload(productID); err == nil {
		productID = decoded
	}
	predictions, err := s.recommender.Predict(ctx, productID)
	if err != nil || predictions == nil {
		return []string{}, nil
	}
	return predictions, nil
}

func (s *Service) fetchRecommendation(ctx context.Context, productID, condition string, voltage, vibration float64) string {
	past, err := s.repo.FindByProduct(ctx, s.db, productID)
	if err != nil {
		past = nil
	}

	rec, err := s.recommender.Recommend(ctx, recommend.Input{
		Condition:       condition,
		VoltageReading:  voltage,
		VibrationLevel:  vibration,
		PastInspections: past,
	})
	if err != nil {
		s.metrics.RecordCollaboratorCall(ctx, "recommendation", "error")
		s.log.Warn("recommendation model unavailable", zap.Error(err))
		return ""
	}
	s.metrics.RecordCollaboratorCall(ctx, "recommendation", "ok")
	return strings.TrimSpace(rec.Text)
}

// resolvePhotos keeps URL entries as-is and uploads inline base64 images one
// at a time, dropping whatever fails.
func (s *Service) resolvePhotos(ctx context.Context, productID string, entries []string) []string {
	urls := make([]string, 0, len(entries))
	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.HasPrefix(entry, "http://") || strings.HasPrefix(entry, "https://") {
			urls = append(urls, entry)
			continue
		}

		data, ok := decodeInlineImage(entry)
		if !ok {
			s.log.Warn("dropping unreadable photo", zap.String("product_id", productID), zap.Int("index", i))
			continue
		}
		url, err := s.images.Upload(ctx, fmt.Sprintf("%s_%d.jpg", productID, i), data)
		if err != nil {
			s.metrics.RecordCollaboratorCall(ctx, "imagestore", "error")
			s.log.Warn("photo upload failed", zap.String("product_id", productID), zap.Int("index", i), zap.Error(err))
			continue
		}
		s.metrics.RecordCollaboratorCall(ctx, "imagestore", "ok")
		urls = append(urls, url)
	}
	return urls
}

func decodeInlineImage(entry string) ([]byte, bool) {
	if idx := strings.Index(entry, ";base64,"); idx >= 0 {
		entry = entry[idx+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(entry)
	if err != nil {
		return nil, false
	}
	return data, true
}

func parseReading(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}
