package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	WarehouseUC *usecase.WarehouseUseCase
	QueryUC     *inventory.QueryUseCase
	TransferUC  *inventory.TransferUseCase
	AuditUC     *inventory.AuditUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todo lo que no es /auth va detrás del
// Bearer Token; las operaciones de escritura además exigen la acción del rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; crear/eliminar según rol)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequirePermission(authz.ActionCreateProduct), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequirePermission(authz.ActionCreateProduct), productHandler.Update)
	products.Delete("/:id", RequirePermission(authz.ActionDeleteProduct), productHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", RequirePermission(authz.ActionCreateSupplier), supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequirePermission(authz.ActionCreateSupplier), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Inventory (protegido, solo lectura)
	invGroup := protected.Group("/inventory", RequirePermission(authz.ActionViewInventory))
	inventoryHandler := NewInventoryHandler(deps.QueryUC)
	invGroup.Get("/level", inventoryHandler.GetLevel)
	invGroup.Get("/warehouses/:id", inventoryHandler.ListByWarehouse)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Transfers (protegido)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", RequirePermission(authz.ActionCreateTransfer), transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/complete", RequirePermission(authz.ActionCompleteTransfer), transferHandler.Complete)
	transfers.Post("/:id/cancel", RequirePermission(authz.ActionCompleteTransfer), transferHandler.Cancel)

	// Audits (protegido)
	audits := protected.Group("/audits")
	auditHandler := NewAuditHandler(deps.AuditUC)
	audits.Post("/", RequirePermission(authz.ActionReconcileAudit), auditHandler.Open)
	audits.Get("/", auditHandler.List)
	audits.Get("/:id", auditHandler.GetByID)
	audits.Post("/:id/reconcile", RequirePermission(authz.ActionReconcileAudit), auditHandler.Reconcile)
}
