package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/railtrack/internal/identity"
	"github.com/smallbiznis/railtrack/internal/lot/domain"
	lotrepository "github.com/smallbiznis/railtrack/internal/lot/repository"
	manufacturerdomain "github.com/smallbiznis/railtrack/internal/manufacturer/domain"
	manufacturerrepository "github.com/smallbiznis/railtrack/internal/manufacturer/repository"
	productdomain "github.com/smallbiznis/railtrack/internal/product/domain"
	productrepository "github.com/smallbiznis/railtrack/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupLotService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&manufacturerdomain.Manufacturer{},
		&domain.Lot{},
		&productdomain.Product{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:            db,
		Log:           zap.NewNop(),
		GenID:         node,
		Repo:          lotrepository.Provide(),
		Products:      productrepository.Provide(),
		Manufacturers: manufacturerrepository.Provide(),
	})
	return svc, db
}

func seedManufacturer(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, db.Create(&manufacturerdomain.Manufacturer{
		ManufacturerID: id,
		Name:           "Test Rail Works",
		CreatedAt:      now,
		UpdatedAt:      now,
	}).Error)
}

func TestCreateLotProvisionsProducts(t *testing.T) {
	svc, db := setupLotService(t)
	seedManufacturer(t, db, "MFG_1")

	resp, err := svc.Create(context.Background(), domain.CreateRequest{
		ManufacturerID: "MFG_1",
		ProductType:    "signal_relay",
		Quantity:       25,
		WarrantyMonths: 24,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Lot.LotID, identity.LotPrefix))
	assert.Len(t, resp.ProductIDs, 25)
	assert.Len(t, resp.ProductCodes, 25)
	assert.NotEmpty(t, resp.PackageCode)

	// Every product identifier is distinct and carries the lot suffix.
	seen := make(map[string]struct{}, len(resp.ProductIDs))
	suffix := strings.TrimPrefix(resp.Lot.LotID, identity.LotPrefix)
	for _, id := range resp.ProductIDs {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate product id %s", id)
		seen[id] = struct{}{}
		assert.Contains(t, id, suffix)
	}

	// The package code decodes back to the lot.
	lotID, err := identity.DecodeLotPayload(resp.PackageCode)
	require.NoError(t, err)
	assert.Equal(t, resp.Lot.LotID, lotID)

	var count int64
	require.NoError(t, db.Model(&productdomain.Product{}).Where("lot_id = ?", resp.Lot.LotID).Count(&count).Error)
	assert.EqualValues(t, 25, count)

	var statuses []string
	require.NoError(t, db.Model(&productdomain.Product{}).
		Where("lot_id = ?", resp.Lot.LotID).
		Distinct("current_status").
		Pluck("current_status", &statuses).Error)
	require.Len(t, statuses, 1)
	assert.Equal(t, string(productdomain.StatusManufactured), statuses[0])
}

func TestCreateLotValidation(t *testing.T) {
	svc, db := setupLotService(t)
	seedManufacturer(t, db, "MFG_1")

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		ManufacturerID: "MFG_1",
		ProductType:    "signal_relay",
		Quantity:       0,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	_, err = svc.Create(context.Background(), domain.CreateRequest{
		ManufacturerID: "MFG_1",
		ProductType:    "",
		Quantity:       5,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidProductType))

	_, err = svc.Create(context.Background(), domain.CreateRequest{
		ManufacturerID: "MFG_1",
		ProductType:    "signal_relay",
		Quantity:       5,
		WarrantyMonths: -1,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidWarrantyMonths))

	_, err = svc.Create(context.Background(), domain.CreateRequest{
		ManufacturerID: "MFG_MISSING",
		ProductType:    "signal_relay",
		Quantity:       5,
	})
	assert.True(t, errors.Is(err, domain.ErrManufacturerNotFound))
}

func TestCreateLotCrossLotUniqueness(t *testing.T) {
	svc, db := setupLotService(t)
	seedManufacturer(t, db, "MFG_1")

	first, err := svc.Create(context.Background(), domain.CreateRequest{
		ManufacturerID: "MFG_1", ProductType: "axle_counter", Quantity: 10,
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), domain.CreateRequest{
		ManufacturerID: "MFG_1", ProductType: "axle_counter", Quantity: 10,
	})
	require.NoError(t, err)

	ids := make(map[string]struct{})
	for _, id := range append(first.ProductIDs, second.ProductIDs...) {
		_, dup := ids[id]
		assert.False(t, dup, "product id %s collides across lots", id)
		ids[id] = struct{}{}
	}
}

func TestListByManufacturer(t *testing.T) {
	svc, db := setupLotService(t)
	seedManufacturer(t, db, "MFG_1")

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		ManufacturerID: "MFG_1", ProductType: "relay", Quantity: 2,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), domain.CreateRequest{
		ManufacturerID: "MFG_1", ProductType: "sensor", Quantity: 3,
	})
	require.NoError(t, err)

	lots, err := svc.ListByManufacturer(context.Background(), "MFG_1")
	require.NoError(t, err)
	require.Len(t, lots, 2)
	for _, l := range lots {
		assert.Equal(t, l.Quantity, len(l.Products))
		for _, p := range l.Products {
			assert.Equal(t, string(productdomain.StatusManufactured), p.CurrentStatus)
		}
	}

	_, err = svc.ListByManufacturer(context.Background(), "MFG_MISSING")
	assert.True(t, errors.Is(err, domain.ErrManufacturerNotFound))
}
