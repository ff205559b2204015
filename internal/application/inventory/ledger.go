package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Ledger es la única vía de mutación del stock por (producto, bodega).
// Todo componente que mueva inventario (traslados, auditorías) pasa por
// Adjust, de modo que la no-negatividad se hace cumplir en un solo lugar.
type Ledger struct{}

// Adjust aplica un delta al stock bajo bloqueo de fila (SELECT FOR UPDATE).
// Si la fila no existe se parte de cantidad cero y el upsert la crea (las
// filas nacen con el primer movimiento y nunca se borran). Un delta que
// dejaría la cantidad negativa se rechaza con *domain.StockError y la fila
// queda intacta. Devuelve la cantidad resultante.
//
// itemRepo debe venir atado a la transacción del caller: el bloqueo de fila
// solo serializa a los escritores dentro de una tx.
func (Ledger) Adjust(itemRepo repository.InventoryItemRepository, productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error) {
	item, err := itemRepo.GetForUpdate(productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	newQty := item.Quantity.Add(delta)
	if newQty.IsNegative() {
		return decimal.Zero, &domain.StockError{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Requested:   delta.Neg(),
			Available:   item.Quantity,
		}
	}
	item.Quantity = newQty
	item.UpdatedAt = time.Now()
	if err := itemRepo.Upsert(item); err != nil {
		return decimal.Zero, err
	}
	return newQty, nil
}

// Get devuelve la cantidad actual; cero si la fila no existe. Nunca produce
// un error de dominio.
func (Ledger) Get(itemRepo repository.InventoryItemRepository, productID, warehouseID string) (decimal.Decimal, error) {
	item, err := itemRepo.Get(productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	return item.Quantity, nil
}
