package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/railtrack/internal/config"
	"github.com/smallbiznis/railtrack/internal/inspection"
	inspectiondomain "github.com/smallbiznis/railtrack/internal/inspection/domain"
	"github.com/smallbiznis/railtrack/internal/installation"
	installationdomain "github.com/smallbiznis/railtrack/internal/installation/domain"
	"github.com/smallbiznis/railtrack/internal/lot"
	lotdomain "github.com/smallbiznis/railtrack/internal/lot/domain"
	"github.com/smallbiznis/railtrack/internal/manufacturer"
	manufacturerdomain "github.com/smallbiznis/railtrack/internal/manufacturer/domain"
	"github.com/smallbiznis/railtrack/internal/observability"
	obslogger "github.com/smallbiznis/railtrack/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/railtrack/internal/observability/metrics"
	obstracing "github.com/smallbiznis/railtrack/internal/observability/tracing"
	"github.com/smallbiznis/railtrack/internal/product"
	productdomain "github.com/smallbiznis/railtrack/internal/product/domain"
	"github.com/smallbiznis/railtrack/internal/providers"
	"github.com/smallbiznis/railtrack/internal/receipt"
	receiptdomain "github.com/smallbiznis/railtrack/internal/receipt/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	manufacturer.Module,
	lot.Module,
	product.Module,
	receipt.Module,
	installation.Module,
	inspection.Module,
	providers.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	manufacturerSvc manufacturerdomain.Service
	lotSvc          lotdomain.Service
	productSvc      productdomain.Service
	receiptSvc      receiptdomain.Service
	installationSvc installationdomain.Service
	inspectionSvc   inspectiondomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	ManufacturerSvc manufacturerdomain.Service
	LotSvc          lotdomain.Service
	ProductSvc      productdomain.Service
	ReceiptSvc      receiptdomain.Service
	InstallationSvc installationdomain.Service
	InspectionSvc   inspectiondomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		manufacturerSvc: p.ManufacturerSvc,
		lotSvc:          p.LotSvc,
		productSvc:      p.ProductSvc,
		receiptSvc:      p.ReceiptSvc,
		installationSvc: p.InstallationSvc,
		inspectionSvc:   p.InspectionSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/manufacturer", s.CreateManufacturer)
	api.GET("/manufacturer/:id", s.GetManufacturer)
	api.PATCH("/manufacturer/:id/contact", s.UpdateManufacturerContact)
	api.POST("/manufacturer/lots", s.CreateLot)
	api.GET("/manufacturer/:id/lots", s.ListLotsByManufacturer)

	api.POST("/udm/receive", s.ReceiveLot)
	api.POST("/tms/install", s.InstallProduct)
	api.POST("/inspections", s.SubmitInspection)

	api.GET("/products", s.ListProducts)
	api.GET("/products/:id", s.GetProduct)
	api.POST("/products/:id/escalate", s.EscalateProduct)
	api.GET("/products/:id/predictions", s.GetProductPredictions)
}
