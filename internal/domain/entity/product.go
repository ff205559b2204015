package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// CostPrice es un campo restringido: solo se expone a principals con permiso
// view_cost_price (la proyección vive en la capa de DTOs). El stock se maneja
// por bodega en InventoryItem, nunca aquí.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	CategoryID  string          // referencia plana; se resuelve por lookup
	CostPrice   decimal.Decimal // restringido a admin
	SellPrice   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
