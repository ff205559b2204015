package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem es el registro autoritativo de stock por (producto, bodega).
// Quantity nunca es negativa. La fila se crea perezosamente con el primer
// movimiento y no se borra: cantidad cero distingue "conocido, vacío" de
// "nunca almacenado"; la ausencia de fila se lee como cantidad cero.
type InventoryItem struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
