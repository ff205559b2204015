package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// InventoryItemRepository define el puerto para consultar/actualizar el ledger
// por (producto, bodega). Los métodos Get nunca fallan por ausencia de fila:
// devuelven un item con cantidad cero, que es la convención "sin fila = 0".
type InventoryItemRepository interface {
	Get(productID, warehouseID string) (*entity.InventoryItem, error)
	// GetForUpdate materializa la fila si no existe y la bloquea
	// (SELECT FOR UPDATE) para serializar los ajustes concurrentes sobre la
	// misma clave, incluida la primera escritura. Usar solo dentro de una tx.
	GetForUpdate(productID, warehouseID string) (*entity.InventoryItem, error)
	Upsert(item *entity.InventoryItem) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryItem, error)
}
