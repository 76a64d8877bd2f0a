package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/railtrack/internal/inspection/domain"
	inspectionrepository "github.com/smallbiznis/railtrack/internal/inspection/repository"
	productdomain "github.com/smallbiznis/railtrack/internal/product/domain"
	productrepository "github.com/smallbiznis/railtrack/internal/product/repository"
	"github.com/smallbiznis/railtrack/internal/providers/imagestore"
	"github.com/smallbiznis/railtrack/internal/providers/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recommenderStub struct {
	text  string
	err   error
	calls int
}

func (r *recommenderStub) Recommend(ctx context.Context, in recommend.Input) (*recommend.Recommendation, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &recommend.Recommendation{Text: r.text}, nil
}

func (r *recommenderStub) Predict(ctx context.Context, productID string) ([]string, error) {
	return nil, nil
}

type uploaderStub struct {
	fail  bool
	calls int
}

func (u *uploaderStub) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	u.calls++
	if u.fail {
		return "", imagestore.ErrUploadFailed
	}
	return fmt.Sprintf("https://img.example/%s", filename), nil
}

// midTransactionWriter flips the product row inside the submission's own
// transaction before the record insert, standing in for a second writer
// whose commit lands after the submission read the row.
type midTransactionWriter struct {
	inner     domain.Repository
	productID string
	status    productdomain.Status
}

func (w *midTransactionWriter) Create(ctx context.Context, db *gorm.DB, record *domain.InspectionRecord) error {
	if err := db.Exec("UPDATE products SET current_status = ? WHERE product_id = ?", w.status, w.productID).Error; err != nil {
		return err
	}
	return w.inner.Create(ctx, db, record)
}

func (w *midTransactionWriter) FindByProduct(ctx context.Context, db *gorm.DB, productID string) ([]domain.InspectionRecord, error) {
	return w.inner.FindByProduct(ctx, db, productID)
}

func setupInspectionService(t *testing.T, rec recommend.Provider, up imagestore.Provider) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&productdomain.Product{},
		&domain.InspectionRecord{},
	))

	if rec == nil {
		rec = &recommend.NoOpProvider{}
	}
	if up == nil {
		up = &imagestore.NoOpProvider{}
	}

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		Repo:        inspectionrepository.Provide(),
		Products:    productrepository.Provide(),
		Recommender: rec,
		Images:      up,
	})
	return svc, db
}

func seedProduct(t *testing.T, db *gorm.DB, productID string, status productdomain.Status) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, db.Create(&productdomain.Product{
		ProductID:       productID,
		LotID:           "LOT_1",
		ManufacturerID:  "MFG_1",
		ProductType:     "relay",
		ManufactureDate: now,
		CurrentStatus:   status,
		CodePayload:     productID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}).Error)
}

func currentStatus(t *testing.T, db *gorm.DB, productID string) productdomain.Status {
	t.Helper()
	var p productdomain.Product
	require.NoError(t, db.Where("product_id = ?", productID).First(&p).Error)
	return p.CurrentStatus
}

func TestSubmitHealthyInspection(t *testing.T) {
	svc, db := setupInspectionService(t, nil, nil)
	seedProduct(t, db, "PROD_1_0001", productdomain.StatusInstalled)

	resp, err := svc.Submit(context.Background(), domain.SubmitRequest{
		ProductID:      "PROD_1_0001",
		Inspector:      "emp-9",
		Results:        domain.Results{Condition: "good", Voltage: "12.4", Vibration: "0.2"},
		Recommendation: "keep monitoring",
	})
	require.NoError(t, err)
	assert.Equal(t, string(productdomain.StatusInCondition), resp.Product.CurrentStatus)
	assert.Equal(t, string(productdomain.StatusInCondition), resp.Inspection.Verdict)
	assert.InDelta(t, 12.4, resp.Inspection.VoltageReading, 1e-9)
	assert.Equal(t, productdomain.StatusInCondition, currentStatus(t, db, "PROD_1_0001"))
}

func TestSubmitFailingInspection(t *testing.T) {
	svc, db := setupInspectionService(t, nil, nil)
	seedProduct(t, db, "PROD_1_0002", productdomain.StatusInCondition)

	resp, err := svc.Submit(context.Background(), domain.SubmitRequest{
		ProductID: "PROD_1_0002",
		Results:   domain.Results{Condition: "Damaged"},
	})
	require.NoError(t, err)
	assert.Equal(t, string(productdomain.StatusFailure), resp.Product.CurrentStatus)
	assert.Equal(t, productdomain.StatusFailure, currentStatus(t, db, "PROD_1_0002"))

	// A later clean report reclassifies back.
	resp, err = svc.Submit(context.Background(), domain.SubmitRequest{
		ProductID:      "PROD_1_0002",
		Results:        domain.Results{Condition: "good"},
		Recommendation: "looks fine now",
	})
	require.NoError(t, err)
	assert.Equal(t, string(productdomain.StatusInCondition), resp.Product.CurrentStatus)
}

func TestSubmitTerminalStateAppendsWithoutTransition(t *testing.T) {
	svc, db := setupInspectionService(t, nil, nil)
	seedProduct(t, db, "PROD_1_0003", productdomain.StatusNeedsReplacement)

	resp, err := svc.Submit(context.Background(), domain.SubmitRequest{
		ProductID:      "PROD_1_0003",
		Results:        domain.Results{Condition: "good"},
		Recommendation: "still fine somehow",
	})
	require.NoError(t, err)
	assert.Equal(t, string(productdomain.StatusNeedsReplacement), resp.Product.CurrentStatus)
	assert.Equal(t, productdomain.StatusNeedsReplacement, currentStatus(t, db, "PROD_1_0003"))

	var count int64
	require.NoError(t, db.Model(&domain.InspectionRecord{}).Where("product_id = ?", "PROD_1_0003").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitRequiresInstallation(t *testing.T) {
	svc, db := setupInspectionService(t, nil, nil)
	seedProduct(t, db, "PROD_1_0004", productdomain.StatusInStock)

	_, err := svc.Submit(context.Background(), domain.SubmitRequest{
		ProductID: "PROD_1_0004",
		Results:   domain.Results{Condition: "good"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, productdomain.ErrPreconditionFailed))
}

func TestSubmitFillsRecommendationFromModel(t *testing.T) {
	rec := &recommenderStub{text: "Replace within 30 days"}
	svc, db := setupInspectionService(t, rec, nil)
	seedProduct(t, db, "PROD_1_0005", productdomain.StatusInstalled)

	resp, err := svc.Submit(context.Background(), domain.SubmitRequest{
		ProductID: "PROD_1_0005",
		Results:   domain.Results{Condition: "fine"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, "Replace within 30 days", resp.Inspection.Recommendation)
	// The model's advice contains "replace", so the verdict flips.
	assert.Equal(t, string(productdomain.StatusFailure), resp.Inspection.Verdict)
	assert.Equal(t, productdomain.StatusFailure, currentStatus(t, db, "PROD_1_0005"))
}

func TestSubmitSurvivesRecommenderOutage(t *testing.T) {
	rec := &recommenderStub{err: recommend.ErrUnavailable}
	svc, db := setupInspectionService(t, rec, nil)
	seedProduct(t, db, "PROD_1_0006", productdomain.StatusInstalled)

	resp, err := svc.Submit(context.Background(), domain.SubmitRequest{
		ProductID: "PROD_1_0006",
		Results:   domain.Results{Condition: "good"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Inspection.Recommendation)
	assert.Equal(t, string(productdomain.StatusInCondition), resp.Inspection.Verdict)
}

func TestSubmitPhotoHandling(t *testing.T) {
	up := &uploaderStub{}
	svc, db := setupInspectionService(t, nil, up)
	seedProduct(t, db, "PROD_1_0007", productdomain.StatusInstalled)

	inline := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	resp, err := svc.Submit(context.Background(), domain.SubmitRequest{
		ProductID:      "PROD_1_0007",
		Results:        domain.Results{Condition: "good"},
		Recommendation: "ok",
		Photos: []string{
			"https://img.example/already-there.jpg",
			inline,
			"data:image/jpeg;base64," + inline,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, up.calls)
	require.Len(t, resp.Inspection.Photos, 3)
	assert.Equal(t, "https://img.example/already-there.jpg", resp.Inspection.Photos[0])
}

func TestSubmitDropsFailedUploads(t *testing.T) {
	up := &uploaderStub{fail: true}
	svc, db := setupInspectionService(t, nil, up)
	seedProduct(t, db, "PROD_1_0008", productdomain.StatusInstalled)

	inline := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	resp, err := svc.Submit(context.Background(), domain.SubmitRequest{
		ProductID:      "PROD_1_0008",
		Results:        domain.Results{Condition: "good"},
		Recommendation: "ok",
		Photos:         []string{"https://img.example/kept.jpg", inline},
	})
	require.NoError(t, err)
	require.Len(t, resp.Inspection.Photos, 1)
	assert.Equal(t, "https://img.example/kept.jpg", resp.Inspection.Photos[0])
}

func setupContendedService(t *testing.T, productID string, concurrent productdomain.Status) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&productdomain.Product{},
		&domain.InspectionRecord{},
	))

	svc := New(Params{
		DB:  db,
		Log: zap.NewNop(),
		Repo: &midTransactionWriter{
			inner:     inspectionrepository.Provide(),
			productID: productID,
			status:    concurrent,
		},
		Products:    productrepository.Provide(),
		Recommender: &recommend.NoOpProvider{},
		Images:      &imagestore.NoOpProvider{},
	})
	return svc, db
}

func TestSubmitConcurrentReclassificationKeepsRecord(t *testing.T) {
	svc, db := setupContendedService(t, "PROD_1_0010", productdomain.StatusFailure)
	seedProduct(t, db, "PROD_1_0010", productdomain.StatusInstalled)

	resp, err := svc.Submit(context.Background(), domain.SubmitRequest{
		ProductID:      "PROD_1_0010",
		Results:        domain.Results{Condition: "good"},
		Recommendation: "looks fine",
	})
	require.NoError(t, err)

	// The losing side is never rolled back; both reports survive the race.
	var count int64
	require.NoError(t, db.Model(&domain.InspectionRecord{}).Where("product_id = ?", "PROD_1_0010").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Last writer wins the status.
	assert.Equal(t, string(productdomain.StatusInCondition), resp.Product.CurrentStatus)
	assert.Equal(t, productdomain.StatusInCondition, currentStatus(t, db, "PROD_1_0010"))
}

func TestSubmitConcurrentEscalationKeepsTerminalState(t *testing.T) {
	svc, db := setupContendedService(t, "PROD_1_0011", productdomain.StatusNeedsReplacement)
	seedProduct(t, db, "PROD_1_0011", productdomain.StatusInstalled)

	resp, err := svc.Submit(context.Background(), domain.SubmitRequest{
		ProductID:      "PROD_1_0011",
		Results:        domain.Results{Condition: "good"},
		Recommendation: "looks fine",
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.InspectionRecord{}).Where("product_id = ?", "PROD_1_0011").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// An operator escalation is never undone by a clean report.
	assert.Equal(t, string(productdomain.StatusNeedsReplacement), resp.Product.CurrentStatus)
	assert.Equal(t, productdomain.StatusNeedsReplacement, currentStatus(t, db, "PROD_1_0011"))
}

func TestSubmitValidation(t *testing.T) {
	svc, db := setupInspectionService(t, nil, nil)
	seedProduct(t, db, "PROD_1_0009", productdomain.StatusInstalled)

	_, err := svc.Submit(context.Background(), domain.SubmitRequest{
		ProductID: "PROD_1_0009",
		Results:   domain.Results{Condition: "   "},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidCondition))

	_, err = svc.Submit(context.Background(), domain.SubmitRequest{
		ProductID: "PROD_MISSING_0001",
		Results:   domain.Results{Condition: "good"},
	})
	assert.True(t, errors.Is(err, productdomain.ErrNotFound))
}
