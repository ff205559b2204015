package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLevelResponse nivel de stock de un producto en una bodega.
// Product viene proyectado según el rol del caller.
type InventoryLevelResponse struct {
	ProductID   string           `json:"product_id"`
	WarehouseID string           `json:"warehouse_id"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Product     *ProductResponse `json:"product,omitempty"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// InventoryLevelListResponse niveles de una bodega.
type InventoryLevelListResponse struct {
	WarehouseID string                   `json:"warehouse_id"`
	Items       []InventoryLevelResponse `json:"items"`
	Page        PageResponse             `json:"page"`
}

// MovementResponse un movimiento del historial de inventario.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reference     string          `json:"reference,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// MovementListResponse historial de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
