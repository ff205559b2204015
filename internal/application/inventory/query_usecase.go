package inventory

import (
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre el ledger: nivel por
// (producto, bodega), niveles de una bodega y el historial de movimientos.
// Los productos anidados salen proyectados según el rol del caller.
type QueryUseCase struct {
	itemRepo      repository.InventoryItemRepository
	movRepo       repository.InventoryMovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *QueryUseCase {
	return &QueryUseCase{
		itemRepo:      itemRepo,
		movRepo:       movRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// GetLevel devuelve el nivel de stock de un producto en una bodega.
// Sin fila = cantidad cero; solo valida que producto y bodega existan.
func (uc *QueryUseCase) GetLevel(role, productID, warehouseID string) (*dto.InventoryLevelResponse, error) {
	if productID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if product == nil || warehouse == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	return &dto.InventoryLevelResponse{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    item.Quantity,
		Product:     dto.ToProductResponse(role, product),
		UpdatedAt:   item.UpdatedAt,
	}, nil
}

// ListByWarehouse lista los niveles de una bodega con el producto anidado
// proyectado por rol.
func (uc *QueryUseCase) ListByWarehouse(role, warehouseID string, limit, offset int) (*dto.InventoryLevelListResponse, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.itemRepo.ListByWarehouse(warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.InventoryLevelListResponse{
		WarehouseID: warehouseID,
		Items:       make([]dto.InventoryLevelResponse, 0, len(items)),
		Page:        dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, item := range items {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, dto.InventoryLevelResponse{
			ProductID:   item.ProductID,
			WarehouseID: item.WarehouseID,
			Quantity:    item.Quantity,
			Product:     dto.ToProductResponse(role, product),
			UpdatedAt:   item.UpdatedAt,
		})
	}
	return resp, nil
}

// ListMovements historial de movimientos de un producto en una bodega.
func (uc *QueryUseCase) ListMovements(productID, warehouseID string, limit, offset int) (*dto.MovementListResponse, error) {
	if productID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.movRepo.ListByProductAndWarehouse(productID, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, m := range list {
		resp.Items = append(resp.Items, dto.MovementResponse{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			ProductID:     m.ProductID,
			WarehouseID:   m.WarehouseID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			Reference:     m.Reference,
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
		})
	}
	return resp, nil
}
