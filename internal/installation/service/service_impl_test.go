package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/railtrack/internal/identity"
	"github.com/smallbiznis/railtrack/internal/installation/domain"
	installationrepository "github.com/smallbiznis/railtrack/internal/installation/repository"
	productdomain "github.com/smallbiznis/railtrack/internal/product/domain"
	productrepository "github.com/smallbiznis/railtrack/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupInstallationService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&productdomain.Product{},
		&domain.InstallationRecord{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     installationrepository.Provide(),
		Products: productrepository.Provide(),
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

func validRequest(productID string) domain.InstallRequest {
	return domain.InstallRequest{
		ProductID:     productID,
		TrackLocation: "KM 42+300, line 2",
		GPSLocation:   &domain.GPS{Lat: 52.52, Lng: 13.405},
		InstalledBy:   "emp-3",
	}
}

func TestInstallMovesProductToInstalled(t *testing.T) {
	svc, db := setupInstallationService(t)
	seedProduct(t, db, "PROD_1_0001", productdomain.StatusInStock)

	resp, err := svc.Install(context.Background(), validRequest("PROD_1_0001"))
	require.NoError(t, err)
	assert.Equal(t, "PROD_1_0001", resp.Installation.ProductID)
	assert.Equal(t, string(productdomain.StatusInstalled), resp.ProductStatus)
	assert.InDelta(t, 52.52, resp.Installation.GPSLocation.Lat, 1e-9)

	var p productdomain.Product
	require.NoError(t, db.Where("product_id = ?", "PROD_1_0001").First(&p).Error)
	assert.Equal(t, productdomain.StatusInstalled, p.CurrentStatus)

	var records []domain.InstallationRecord
	require.NoError(t, db.Where("product_id = ?", "PROD_1_0001").Find(&records).Error)
	assert.Len(t, records, 1)
}

func TestInstallRequiresDepotReceiptFirst(t *testing.T) {
	svc, db := setupInstallationService(t)
	seedProduct(t, db, "PROD_1_0002", productdomain.StatusManufactured)

	_, err := svc.Install(context.Background(), validRequest("PROD_1_0002"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, productdomain.ErrPreconditionFailed))

	var pErr *productdomain.PreconditionError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, "depot receipt", pErr.Required)

	// Nothing written on rejection.
	var count int64
	require.NoError(t, db.Model(&domain.InstallationRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInstallRejectsReinstall(t *testing.T) {
	svc, db := setupInstallationService(t)
	seedProduct(t, db, "PROD_1_0003", productdomain.StatusInstalled)

	_, err := svc.Install(context.Background(), validRequest("PROD_1_0003"))
	assert.True(t, errors.Is(err, productdomain.ErrPreconditionFailed))
}

func TestInstallValidation(t *testing.T) {
	svc, db := setupInstallationService(t)
	seedProduct(t, db, "PROD_1_0004", productdomain.StatusInStock)

	req := validRequest("PROD_1_0004")
	req.TrackLocation = "  "
	_, err := svc.Install(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrInvalidLocation))

	req = validRequest("PROD_1_0004")
	req.GPSLocation = nil
	_, err = svc.Install(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrInvalidCoordinates))

	req = validRequest("PROD_1_0004")
	req.GPSLocation = &domain.GPS{Lat: 120, Lng: 10}
	_, err = svc.Install(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrInvalidCoordinates))
}

func TestInstallAcceptsScannedCode(t *testing.T) {
	svc, db := setupInstallationService(t)
	seedProduct(t, db, "PROD_1_0005", productdomain.StatusInStock)

	req := validRequest("")
	req.Scan = "https://track.example/p/PROD_1_0005"
	resp, err := svc.Install(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "PROD_1_0005", resp.Installation.ProductID)

	req = validRequest("")
	req.Scan = `{"lotId":"LOT_9"}`
	_, err = svc.Install(context.Background(), req)
	assert.True(t, errors.Is(err, identity.ErrNotAProduct))
}

func TestInstallUnknownProduct(t *testing.T) {
	svc, _ := setupInstallationService(t)

	_, err := svc.Install(context.Background(), validRequest("PROD_MISSING_0001"))
	assert.True(t, errors.Is(err, productdomain.ErrNotFound))
}
