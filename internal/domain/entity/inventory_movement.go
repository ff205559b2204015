package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre bodegas
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste por auditoría
)

// InventoryMovement es el historial inmutable de cada ajuste al ledger.
// TransactionID agrupa los movimientos de una misma operación lógica
// (los dos lados de un traslado, todos los ajustes de una auditoría).
type InventoryMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	WarehouseID   string
	Type          string
	Quantity      decimal.Decimal // positivo entrada, negativo salida
	Reference     string          // orden de traslado, auditoría, etc.
	CreatedAt     time.Time
	CreatedBy     string // UserID
}
