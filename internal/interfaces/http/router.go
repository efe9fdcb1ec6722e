package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reposicion-api/internal/application/inventory"
	"github.com/jhoicas/reposicion-api/internal/application/purchasing"
	"github.com/jhoicas/reposicion-api/internal/application/sales"
	"github.com/jhoicas/reposicion-api/internal/application/usecase"
)

// Roles reconocidos en el claim "role" del token.
const (
	RoleAdmin     = "admin"
	RolePurchases = "compras"
	RoleWarehouse = "deposito"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BasePath      string
	ArticleUC     *usecase.ArticleUseCase
	SupplierUC    *usecase.SupplierUseCase
	ModelUC       *usecase.InventoryModelUseCase
	LinkUC        *inventory.SupplierLinkUseCase
	AdjustmentUC  *inventory.AdjustmentUseCase
	Replenishment *inventory.ReplenishmentUseCase
	OrderUC       *purchasing.PurchaseOrderUseCase
	ReviewUC      *purchasing.ReviewUseCase
	SaleUC        *sales.SaleUseCase
	Health        *HealthHandler
	JWTSecret     string // vacío = API sin autenticación
	JWTIssuer     string
}

// Router registra las rutas de la API bajo BasePath.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.Check)
	}

	api := app.Group(deps.BasePath)
	authEnabled := deps.JWTSecret != ""
	if authEnabled {
		api.Use(AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	}
	// roles restringe la ruta solo cuando la API exige token.
	roles := func(allowed ...string) fiber.Handler {
		if !authEnabled {
			return func(c *fiber.Ctx) error { return c.Next() }
		}
		return RequireRole(append(allowed, RoleAdmin)...)
	}

	articles := api.Group("/ABMArticulo")
	articleHandler := NewArticleHandler(deps.ArticleUC)
	articles.Get("/getAll", articleHandler.GetAll)
	articles.Get("/getById/:id", articleHandler.GetByID)
	articles.Get("/faltantes", articleHandler.Critical)
	articles.Get("/reponer", articleHandler.ToReplenish)
	articles.Post("/crear", roles(RolePurchases), articleHandler.Create)
	articles.Put("/modificar", roles(RolePurchases), articleHandler.Update)
	articles.Put("/eliminar/:id", roles(RolePurchases), articleHandler.Delete)

	suppliers := api.Group("/ABMProveedor")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/getAll", supplierHandler.GetAll)
	suppliers.Get("/getById/:id", supplierHandler.GetByID)
	suppliers.Post("/crear", roles(RolePurchases), supplierHandler.Create)
	suppliers.Put("/modificar/:id", roles(RolePurchases), supplierHandler.Update)
	suppliers.Put("/eliminar/:id", roles(RolePurchases), supplierHandler.Delete)

	models := api.Group("/ABMModeloInventario")
	modelHandler := NewInventoryModelHandler(deps.ModelUC)
	models.Get("/getAll", modelHandler.GetAll)
	models.Get("/getById/:id", modelHandler.GetByID)
	models.Post("/crear", roles(), modelHandler.Create)
	models.Put("/modificar/:id", roles(), modelHandler.Update)
	models.Put("/eliminar/:id", roles(), modelHandler.Delete)

	links := api.Group("/asignarProveedor")
	linkHandler := NewSupplierLinkHandler(deps.LinkUC)
	links.Get("/getAll", linkHandler.GetAll)
	links.Get("/getById/:id", linkHandler.GetByID)
	links.Post("/asignar", roles(RolePurchases), linkHandler.Assign)
	links.Post("/modificar", roles(RolePurchases), linkHandler.Modify)
	links.Put("/eliminar/:id", roles(RolePurchases), linkHandler.Eliminate)

	adjust := api.Group("/AjustarInventario")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjust.Get("/getArticulo", adjustmentHandler.GetArticle)
	adjust.Post("/confirmar", roles(RoleWarehouse), adjustmentHandler.Confirm)
	adjust.Post("/solicitar", roles(RoleWarehouse), adjustmentHandler.Request)
	adjust.Post("/confirmarToken/:token", roles(RoleWarehouse), adjustmentHandler.ConfirmToken)

	replenishmentHandler := NewReplenishmentHandler(deps.Replenishment)
	api.Get("/CalcularCGI/calculo", replenishmentHandler.CalculateCGI)

	orderHandler := NewPurchaseOrderHandler(deps.OrderUC)
	generate := api.Group("/GenerarOrdenCompra")
	generate.Get("/sugerirOrden", replenishmentHandler.SuggestOrder)
	generate.Post("/nuevaOrden", roles(RolePurchases), orderHandler.Create)
	api.Put("/EnviarOrdenCompra/enviar/:id", roles(RolePurchases), orderHandler.Send)
	api.Put("/FinalizarOrdenCompra/finalizar/:id", roles(RoleWarehouse), orderHandler.Finalize)
	api.Put("/CancelarOrdenDeCompra/cancelar/:id", roles(RolePurchases), orderHandler.Cancel)
	api.Post("/ModificarOrdenCompra/modificar", roles(RolePurchases), orderHandler.Modify)
	orders := api.Group("/OrdenCompra")
	orders.Get("/getAll", orderHandler.GetAll)
	orders.Get("/getById/:id", orderHandler.GetByID)
	orders.Get("/pdf/:id", orderHandler.PDF)

	salesGroup := api.Group("/ABMVenta")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Get("/getAll", saleHandler.GetAll)
	salesGroup.Get("/getById/:id", saleHandler.GetByID)
	salesGroup.Post("/crear", roles(RoleWarehouse), saleHandler.Create)

	review := api.Group("/RevisionPeriodica")
	reviewHandler := NewReviewHandler(deps.ReviewUC)
	review.Get("/pendientes", reviewHandler.Pending)
	review.Post("/procesar/:id", roles(RolePurchases), reviewHandler.Process)
}
