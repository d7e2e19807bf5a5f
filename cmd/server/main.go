package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	adjustmentapp "github.com/dukabook/backend/internal/application/adjustment"
	billingapp "github.com/dukabook/backend/internal/application/billing"
	catalogapp "github.com/dukabook/backend/internal/application/catalog"
	hospitalapp "github.com/dukabook/backend/internal/application/hospital"
	salonapp "github.com/dukabook/backend/internal/application/salon"
	"github.com/dukabook/backend/internal/infrastructure/auth"
	"github.com/dukabook/backend/internal/infrastructure/config"
	"github.com/dukabook/backend/internal/infrastructure/lab"
	"github.com/dukabook/backend/internal/infrastructure/logger"
	"github.com/dukabook/backend/internal/infrastructure/persistence"
	"github.com/dukabook/backend/internal/infrastructure/watch"
	"github.com/dukabook/backend/internal/interfaces/http/handler"
	"github.com/dukabook/backend/internal/interfaces/http/middleware"
	"github.com/dukabook/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database connected")

	// Repositories
	itemRepo := persistence.NewGormItemRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	quotationRepo := persistence.NewGormQuotationRepository(db.DB)
	posSaleRepo := persistence.NewGormPOSSaleRepository(db.DB)
	returnRepo := persistence.NewGormGoodsReturnRepository(db.DB)
	damageRepo := persistence.NewGormDamageRecordRepository(db.DB)
	visitRepo := persistence.NewGormVisitRepository(db.DB)
	prescriptionRepo := persistence.NewGormPrescriptionRepository(db.DB)
	shiftRepo := persistence.NewGormShiftRepository(db.DB)

	// Transaction scopes for the flows that move stock and flip a
	// document status together
	billingTx := persistence.NewGormBillingTransactionScope(db.DB)
	adjustmentTx := persistence.NewGormAdjustmentTransactionScope(db.DB)
	hospitalTx := persistence.NewGormHospitalTransactionScope(db.DB)

	// Application services
	vatRate := cfg.Tax.VATRate()
	labSource := lab.NewClient(cfg.Watch)

	itemService := catalogapp.NewItemService(itemRepo)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, itemRepo, billingTx, vatRate)
	quotationService := billingapp.NewQuotationService(quotationRepo, invoiceRepo, itemRepo, vatRate)
	posService := billingapp.NewPOSService(posSaleRepo, itemRepo, shiftRepo, billingTx, vatRate)
	returnService := adjustmentapp.NewReturnService(returnRepo, invoiceRepo, adjustmentTx)
	damageService := adjustmentapp.NewDamageService(damageRepo, itemRepo, adjustmentTx)
	visitService := hospitalapp.NewVisitService(visitRepo, prescriptionRepo, invoiceRepo, labSource, hospitalTx, vatRate)
	prescriptionService := hospitalapp.NewPrescriptionService(prescriptionRepo, visitRepo, itemRepo, hospitalTx)
	shiftService := salonapp.NewShiftService(shiftRepo, posSaleRepo)

	tokenService := auth.NewTokenService(cfg.JWT)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.Auth(tokenService))

	router.NewRouter(engine).
		Register(handler.NewSystemHandler(version)).
		Register(handler.NewItemHandler(itemService)).
		Register(handler.NewInvoiceHandler(invoiceService)).
		Register(handler.NewQuotationHandler(quotationService)).
		Register(handler.NewPOSHandler(posService)).
		Register(handler.NewAdjustmentHandler(returnService, damageService)).
		Register(handler.NewHospitalHandler(visitService, prescriptionService)).
		Register(handler.NewShiftHandler(shiftService)).
		Setup()

	// Background lab-result polling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var poller *watch.Poller
	if cfg.Watch.Enabled {
		poller = watch.NewPoller("lab-results", cfg.Watch.PollInterval, visitService.PollLabResults, log)
		if err := poller.Start(ctx); err != nil {
			log.Fatal("Failed to start lab poller", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()
	log.Info("Server listening", zap.String("addr", srv.Addr))

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if poller != nil {
		if err := poller.Stop(shutdownCtx); err != nil {
			log.Error("Lab poller shutdown error", zap.Error(err))
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped")
}
