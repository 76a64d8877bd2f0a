package migration

import (
	"github.com/smallbiznis/railtrack/internal/config"
	inspectiondomain "github.com/smallbiznis/railtrack/internal/inspection/domain"
	installationdomain "github.com/smallbiznis/railtrack/internal/installation/domain"
	lotdomain "github.com/smallbiznis/railtrack/internal/lot/domain"
	manufacturerdomain "github.com/smallbiznis/railtrack/internal/manufacturer/domain"
	productdomain "github.com/smallbiznis/railtrack/internal/product/domain"
	receiptdomain "github.com/smallbiznis/railtrack/internal/receipt/domain"
	"github.com/smallbiznis/railtrack/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Non-postgres dialects (sqlite for local development) fall
			// back to model-driven migration.
			if err := conn.AutoMigrate(
				&manufacturerdomain.Manufacturer{},
				&lotdomain.Lot{},
				&productdomain.Product{},
				&receiptdomain.DepotReceipt{},
				&installationdomain.InstallationRecord{},
				&inspectiondomain.InspectionRecord{},
			); err != nil {
				return err
			}
		}

		if cfg.Environment == "development" {
			return seed.EnsureDefaultManufacturer(conn)
		}
		return nil
	}),
)
