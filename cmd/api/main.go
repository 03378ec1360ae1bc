package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Faturacao-api/internal/application/billing"
	"github.com/jhoicas/Faturacao-api/internal/application/inventory"
	"github.com/jhoicas/Faturacao-api/internal/application/reporting"
	"github.com/jhoicas/Faturacao-api/internal/application/treasury"
	fiscal "github.com/jhoicas/Faturacao-api/internal/domain/billing"
	infraagt "github.com/jhoicas/Faturacao-api/internal/infrastructure/agt"
	"github.com/jhoicas/Faturacao-api/internal/infrastructure/cache"
	"github.com/jhoicas/Faturacao-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Faturacao-api/internal/infrastructure/saft"
	httpRouter "github.com/jhoicas/Faturacao-api/internal/interfaces/http"
	"github.com/jhoicas/Faturacao-api/pkg/config"
	"github.com/jhoicas/Faturacao-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	payrollRepo := postgres.NewPayrollRepository(pool)
	overrideRepo := postgres.NewOverrideRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	adjustmentRepo := postgres.NewStockMovementRepository(pool)
	cashRepo := postgres.NewCashRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Firma de documentos: certificado AGT si está configurado, si no digest de desarrollo.
	signer, realSigner, err := infraagt.NewSigner(cfg.AGT.CertPath, cfg.AGT.CertKeyPath, cfg.AGT.CertPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar certificado AGT")
	}
	if !realSigner {
		if cfg.App.Env == "production" {
			log.Fatal().Msg("AGT_CERT_PATH requerido en producción")
		}
		log.Warn().Msg("sin certificado AGT: hash de desarrollo (documentos no válidos fiscalmente)")
	}

	// Caché de relatórios opcional: sin REDIS_URL se calcula siempre.
	var reportCache *cache.RedisReportCache
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		reportCache = cache.NewRedisReportCache(rdb, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		log.Info().Int("ttl_seconds", cfg.Redis.TTLSeconds).Msg("caché de relatórios activa")
	}

	ucLog := log.WithComponent("usecase")
	var (
		invalidator billing.ReportInvalidator
		repCache    reporting.ReportCache
	)
	if reportCache != nil {
		invalidator, repCache = reportCache, reportCache
	}

	previewUC := billing.NewPreviewUseCase(fiscal.ExchangeRates(cfg.Currency.Rates))
	certifyUC := billing.NewCertifyInvoiceUseCase(txRunner, signer, invalidator, ucLog)
	cancelUC := billing.NewCancelInvoiceUseCase(txRunner, invalidator, ucLog)
	reportingUC := reporting.NewUseCase(
		invoiceRepo, purchaseRepo, payrollRepo, overrideRepo, companyRepo,
		saft.NewBuilder(), repCache,
		reporting.Options{
			SimplifiedExemptRate: cfg.Tax.SimplifiedExemptRate,
			Software: saft.SoftwareInfo{
				CertificateNumber: cfg.AGT.SoftwareCertificateNumber,
				ProductID:         cfg.AGT.ProductID,
				ProductVersion:    cfg.AGT.ProductVersion,
			},
		},
		ucLog,
	)
	inventoryUC := inventory.NewUseCase(invoiceRepo, purchaseRepo, adjustmentRepo, productRepo, warehouseRepo, ucLog)
	treasuryUC := treasury.NewUseCase(cashRepo, invoiceRepo, purchaseRepo, ucLog)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Faturação API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Preview:   previewUC,
		Certify:   certifyUC,
		Cancel:    cancelUC,
		Reports:   reportingUC,
		Inventory: inventoryUC,
		Treasury:  treasuryUC,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
		Log:       log.WithComponent("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
