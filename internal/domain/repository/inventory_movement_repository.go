package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// InventoryMovementRepository define el puerto del historial de movimientos.
// Los movimientos son inmutables: solo se insertan y se listan.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByProductAndWarehouse(productID, warehouseID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
