package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/placacenter/pos-api/internal/application/auth"
	appinv "github.com/placacenter/pos-api/internal/application/inventory"
	"github.com/placacenter/pos-api/internal/application/report"
	"github.com/placacenter/pos-api/internal/application/sale"
	"github.com/placacenter/pos-api/internal/application/usecase"
	"github.com/placacenter/pos-api/internal/domain/entity"
	"github.com/placacenter/pos-api/internal/domain/repository"
	"github.com/placacenter/pos-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	SupplierUC *usecase.SupplierUseCase
	ProductUC  *usecase.ProductUseCase
	EntryUC    *appinv.EntryUseCase
	ImportUC   *appinv.ImportUseCase
	CheckoutUC *sale.CheckoutUseCase
	ReportUC   *report.SalesUseCase
	AuthUC     *auth.AuthUseCase
	MovRepo    repository.InventoryMovementRepository
	Receipts   *pdf.ReceiptGenerator
	JWTSecret  string
}

// Router registra las rutas de la API. Las mutaciones de inventario exigen
// rol admin o bodeguero; el checkout, admin o vendedor.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	canRestock := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	canSell := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Categorías
	categories := protected.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", canRestock, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", canRestock, categoryHandler.Update)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), categoryHandler.Delete)

	// Proveedores
	suppliers := protected.Group("/proveedores")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", canRestock, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", canRestock, supplierHandler.Update)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), supplierHandler.Delete)

	// Productos
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", canRestock, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/stock-bajo", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", canRestock, productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Inventario: entradas, importación masiva y libro de movimientos
	invGroup := protected.Group("/inventario")
	inventoryHandler := NewInventoryHandler(deps.EntryUC, deps.ImportUC, deps.MovRepo)
	invGroup.Post("/entradas", canRestock, inventoryHandler.RegisterEntry)
	invGroup.Post("/importar", canRestock, inventoryHandler.Import)
	invGroup.Get("/movimientos", inventoryHandler.ListMovements)

	// Ventas
	sales := protected.Group("/ventas")
	saleHandler := NewSaleHandler(deps.CheckoutUC, deps.Receipts)
	sales.Post("/checkout", canSell, saleHandler.Checkout)

	// Reportes
	reports := protected.Group("/reportes")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/ventas", reportHandler.Sales)
}
