package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "fleetcodes/internal/adapter/http"
	"fleetcodes/internal/adapter/middleware"
	"fleetcodes/internal/adapter/repository/mysql"
	"fleetcodes/internal/config"
	formatDomain "fleetcodes/internal/domain/codeformat"
	codeDomain "fleetcodes/internal/domain/entitycode"
	tenantDomain "fleetcodes/internal/domain/tenant"
	"fleetcodes/internal/infrastructure/cache"
	"fleetcodes/internal/infrastructure/db"
	"fleetcodes/internal/metrics"
	"fleetcodes/internal/usecase/codegen"
	"fleetcodes/internal/usecase/format"
	"fleetcodes/internal/usecase/tenant"
	"fleetcodes/pkg/logger"

	"time"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: "fleetcodes",
	}); err != nil {
		log.Fatalf("logger: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		logger.L().Fatal("mysql open failed", zap.Error(err))
	}
	if err := db.Migrate(gdb,
		&tenantDomain.Tenant{},
		&formatDomain.CodeFormat{},
		&codeDomain.EntityCode{},
	); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.L().Fatal("redis open failed", zap.Error(err))
	}

	formatRepo := mysql.NewFormatRepository(gdb)
	codeRepo := mysql.NewEntityCodeRepository(gdb)
	tenantRepo := mysql.NewTenantRepository(gdb)
	guow := mysql.NewGormUoW(gdb)

	genUC := codegen.NewUsecase(codeRepo, guow)
	formatUC := format.NewUsecase(formatRepo, guow)
	tenantUC := tenant.NewUsecase(tenantRepo)

	h := httpadp.NewHandler()
	codeH := httpadp.NewCodeHandler(genUC)
	formatH := httpadp.NewFormatHandler(formatUC, genUC)
	tenantH := httpadp.NewTenantHandler(tenantUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), middleware.RequestID(), metrics.Middleware())

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api/v1", middleware.TenantResolver(tenantRepo))

	codes := api.Group("/codes", middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	codes.POST("", codeH.GenerateCode)
	codes.GET("", codeH.ListCodes)
	codes.GET("/:entity_type/:entity_id", codeH.GetCode)

	formats := api.Group("/formats")
	formats.GET("", formatH.ListFormats)
	formats.POST("", formatH.CreateFormat)
	formats.POST("/preview", formatH.PreviewFormat)
	formats.GET("/:id", formatH.GetFormat)
	formats.PUT("/:id", formatH.UpdateFormat)
	formats.DELETE("/:id", formatH.DeleteFormat)
	formats.POST("/:id/reset", formatH.ResetSequence)

	tenants := api.Group("/tenants")
	tenants.GET("", tenantH.ListTenants)
	tenants.POST("", tenantH.CreateTenant)
	tenants.GET("/:tenant_id", tenantH.GetTenant)
	tenants.PUT("/:tenant_id", tenantH.UpdateTenant)

	addr := ":" + cfg.AppPort
	logger.L().Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
