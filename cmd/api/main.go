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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/reposicion-api/docs"
	"github.com/jhoicas/reposicion-api/internal/application/inventory"
	"github.com/jhoicas/reposicion-api/internal/application/ports"
	"github.com/jhoicas/reposicion-api/internal/application/purchasing"
	"github.com/jhoicas/reposicion-api/internal/application/sales"
	"github.com/jhoicas/reposicion-api/internal/application/usecase"
	domaininv "github.com/jhoicas/reposicion-api/internal/domain/inventory"
	"github.com/jhoicas/reposicion-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/reposicion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/reposicion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/reposicion-api/internal/interfaces/http"
	"github.com/jhoicas/reposicion-api/pkg/config"
	"github.com/jhoicas/reposicion-api/pkg/logger"
)

// @title        Reposición API
// @version      1.0
// @description  Modelos de inventario, proveedores por artículo, CGI y órdenes de compra.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Zerolog()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Ajustes pendientes: Redis si está configurado, memoria del proceso si no.
	var rdb *redis.Client
	var pending ports.PendingAdjustmentStore = cache.NewMemoryAdjustmentStore()
	if cfg.Redis.URL != "" {
		rdb, err = cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		pending = cache.NewRedisAdjustmentStore(rdb, cfg.Redis.KeyPrefix)
	} else {
		log.Warn().Msg("REDIS_URL vacío: los ajustes pendientes se guardan en memoria")
	}

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)
	params := domaininv.Params{DaysPerYear: cfg.Replenishment.DaysPerYear}

	articleUC := usecase.NewArticleUseCase(repos.Articles, txRunner, params)
	supplierUC := usecase.NewSupplierUseCase(repos.Suppliers, txRunner)
	modelUC := usecase.NewInventoryModelUseCase(repos.Models, txRunner)
	linkUC := inventory.NewSupplierLinkUseCase(txRunner, repos.Links, params)
	adjustmentUC := inventory.NewAdjustmentUseCase(txRunner, repos.Articles, pending, cfg.Replenishment.ConfirmationTTL)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.Articles, repos.Links, params)

	// PDF: orden de compra para enviar al proveedor
	orderUC := purchasing.NewPurchaseOrderUseCase(txRunner, repos.Orders, infrapdf.NewPurchaseOrderRenderer(cfg.App.Name))
	reviewUC := purchasing.NewReviewUseCase(txRunner, repos.Links, repos.Articles, params)
	saleUC := sales.NewSaleUseCase(txRunner, repos.Sales, params, cfg.Replenishment.AutoOrderOnSale)

	// Immutable: los valores de c.Params y c.Query sobreviven al request (ajustes pendientes, logs).
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		Immutable:    true,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Reposición API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		BasePath:      cfg.HTTP.BasePath,
		ArticleUC:     articleUC,
		SupplierUC:    supplierUC,
		ModelUC:       modelUC,
		LinkUC:        linkUC,
		AdjustmentUC:  adjustmentUC,
		Replenishment: replenishmentUC,
		OrderUC:       orderUC,
		ReviewUC:      reviewUC,
		SaleUC:        saleUC,
		Health:        httpRouter.NewHealthHandler(pool, rdb),
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
