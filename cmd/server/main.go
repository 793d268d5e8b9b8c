package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	attachmentapp "github.com/gestor-erp/backend/internal/application/attachment"
	billingapp "github.com/gestor-erp/backend/internal/application/billing"
	catalogapp "github.com/gestor-erp/backend/internal/application/catalog"
	commissionapp "github.com/gestor-erp/backend/internal/application/commission"
	crmapp "github.com/gestor-erp/backend/internal/application/crm"
	financeapp "github.com/gestor-erp/backend/internal/application/finance"
	identityapp "github.com/gestor-erp/backend/internal/application/identity"
	inventoryapp "github.com/gestor-erp/backend/internal/application/inventory"
	partnerapp "github.com/gestor-erp/backend/internal/application/partner"
	posapp "github.com/gestor-erp/backend/internal/application/pos"
	reportapp "github.com/gestor-erp/backend/internal/application/report"
	tradeapp "github.com/gestor-erp/backend/internal/application/trade"
	"github.com/gestor-erp/backend/internal/infrastructure/auth"
	"github.com/gestor-erp/backend/internal/infrastructure/cache"
	"github.com/gestor-erp/backend/internal/infrastructure/config"
	"github.com/gestor-erp/backend/internal/infrastructure/logger"
	"github.com/gestor-erp/backend/internal/infrastructure/migration"
	"github.com/gestor-erp/backend/internal/infrastructure/persistence"
	"github.com/gestor-erp/backend/internal/infrastructure/scheduler"
	"github.com/gestor-erp/backend/internal/infrastructure/storage"
	"github.com/gestor-erp/backend/internal/interfaces/http/handler"
	"github.com/gestor-erp/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const migrationsPath = "migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	log.Info("starting gestor backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()

	runMigrations(db, log)

	blacklist := newTokenBlacklist(cfg, log)
	reportCache := newReportCache(cfg, log)
	blobs := newObjectStorage(cfg, log)

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	sellerRepo := persistence.NewGormSellerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	packageRepo := persistence.NewGormPackageRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	serviceOrderRepo := persistence.NewGormServiceOrderRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	incomingNoteRepo := persistence.NewGormIncomingNoteRepository(db.DB)
	commissionRepo := persistence.NewGormCommissionRepository(db.DB)
	payableRepo := persistence.NewGormPayableRepository(db.DB)
	receivableRepo := persistence.NewGormReceivableRepository(db.DB)
	cashFlowRepo := persistence.NewGormCashFlowRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	opportunityRepo := persistence.NewGormOpportunityRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	attachmentRepo := persistence.NewGormAttachmentRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	companyService := identityapp.NewCompanyService(companyRepo, memberRepo, userRepo, roleRepo)

	clientService := partnerapp.NewClientService(clientRepo)
	sellerService := partnerapp.NewSellerService(sellerRepo)
	productService := catalogapp.NewProductService(productRepo, blobs)
	serviceService := catalogapp.NewServiceService(serviceRepo)
	packageService := catalogapp.NewPackageService(packageRepo)

	salesOrderService := tradeapp.NewSalesOrderService(salesOrderRepo, clientRepo, sellerRepo, productRepo, movementRepo, commissionRepo)
	purchaseOrderService := tradeapp.NewPurchaseOrderService(purchaseOrderRepo, clientRepo, productRepo, movementRepo, payableRepo)
	serviceOrderService := tradeapp.NewServiceOrderService(serviceOrderRepo, clientRepo, sellerRepo, serviceRepo)

	movementService := inventoryapp.NewMovementService(movementRepo, productRepo)
	incomingNoteService := inventoryapp.NewIncomingNoteService(incomingNoteRepo, clientRepo, productRepo)
	commissionService := commissionapp.NewCommissionService(commissionRepo)

	payableService := financeapp.NewPayableService(payableRepo, cashFlowRepo)
	receivableService := financeapp.NewReceivableService(receivableRepo, cashFlowRepo)
	cashFlowService := financeapp.NewCashFlowService(cashFlowRepo)

	contractService := billingapp.NewContractService(contractRepo, clientRepo, cfg.Billing.DefaultDueDay)
	billingRunService := billingapp.NewBillingRunService(contractRepo, receivableRepo, log)

	opportunityService := crmapp.NewOpportunityService(opportunityRepo)
	posService := posapp.NewPosService(cfg.POS.CartTTL, salesOrderRepo, clientRepo, productRepo, movementRepo, cashFlowRepo)
	reportService := reportapp.NewReportService(reportRepo, reportCache, log)
	attachmentService := attachmentapp.NewAttachmentService(attachmentRepo, blobs, log)

	// Billing runs fire daily; start of day billing keeps contract
	// receivables current without manual runs
	billingScheduler := scheduler.NewBillingScheduler(scheduler.DefaultConfig(), billingRunService, companyRepo, log)
	billingScheduler.Start(context.Background())
	defer billingScheduler.Stop()
	if cfg.Billing.RunOnStartup {
		go billingScheduler.RunNow(context.Background())
	}

	engine := router.New(router.Config{
		AppConfig: cfg,
		Logger:    log,
		JWT:       jwtService,
		Blacklist: blacklist,
		Companies: companyService,
		Public: []router.Registrar{
			handler.NewAuthHandler(authService),
			handler.NewCompanyHandler(companyService),
		},
		Scoped: []router.Registrar{
			handler.NewPartnerHandler(clientService, sellerService),
			handler.NewCatalogHandler(productService, serviceService, packageService),
			handler.NewSalesOrderHandler(salesOrderService),
			handler.NewPurchaseOrderHandler(purchaseOrderService),
			handler.NewServiceOrderHandler(serviceOrderService),
			handler.NewInventoryHandler(movementService, incomingNoteService),
			handler.NewCommissionHandler(commissionService),
			handler.NewFinanceHandler(payableService, receivableService, cashFlowService),
			handler.NewBillingHandler(contractService, billingRunService),
			handler.NewCRMHandler(opportunityService),
			handler.NewPOSHandler(posService),
			handler.NewReportHandler(reportService),
			handler.NewAttachmentHandler(attachmentService),
		},
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

func runMigrations(db *persistence.Database, log *zap.Logger) {
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB for migrations", zap.Error(err))
	}
	migrator, err := migration.New(sqlDB, migrationsPath, log)
	if err != nil {
		log.Fatal("failed to create migrator", zap.Error(err))
	}
	if err := migrator.Up(); err != nil {
		log.Fatal("failed to apply migrations", zap.Error(err))
	}
}

// newTokenBlacklist prefers Redis so sign-outs survive restarts and are
// shared between instances; development falls back to process memory
func newTokenBlacklist(cfg *config.Config, log *zap.Logger) auth.TokenBlacklist {
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("redis is required in production", zap.Error(err))
		}
		log.Warn("redis unavailable, using in-memory token blacklist", zap.Error(err))
		return auth.NewInMemoryTokenBlacklist()
	}
	return blacklist
}

func newReportCache(cfg *config.Config, log *zap.Logger) cache.ReportCache {
	reportCache, err := cache.NewRedisReportCache(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, using in-memory report cache", zap.Error(err))
		return cache.NewInMemoryReportCache()
	}
	return reportCache
}

// newObjectStorage wires S3-compatible storage when configured, otherwise an
// in-memory store that only suits local development
func newObjectStorage(cfg *config.Config, log *zap.Logger) storage.ObjectStorage {
	if cfg.Storage.Endpoint == "" && cfg.Storage.AccessKeyID == "" {
		log.Warn("object storage not configured, uploads are kept in memory")
		return storage.NewMemoryObjectStorage(cfg.Storage.PublicBaseURL)
	}

	s3, err := storage.NewS3ObjectStorage(cfg.Storage, log)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s3.EnsureBucket(ctx); err != nil {
		log.Fatal("failed to ensure storage bucket", zap.Error(err))
	}
	return s3
}
