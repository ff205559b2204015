package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de traslado. PENDING es el único estado no terminal:
// solo avanza a COMPLETED o CANCELLED, nunca retrocede.
const (
	TransferStatusPending   = "PENDING"
	TransferStatusCompleted = "COMPLETED"
	TransferStatusCancelled = "CANCELLED"
)

// TransferOrder es un traslado de stock entre exactamente dos bodegas.
// Crear la orden no mueve stock; el movimiento ocurre al completarla,
// como una unidad atómica (todo o nada).
type TransferOrder struct {
	ID                     string
	SourceWarehouseID      string
	DestinationWarehouseID string
	Status                 string
	Items                  []TransferItem // en orden de línea
	CreatedBy              string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TransferItem es una línea de la orden. LineNo fija el orden de aplicación
// para que el primer ítem fallido sea determinista.
type TransferItem struct {
	ID              string
	TransferOrderID string
	ProductID       string
	Quantity        decimal.Decimal // siempre > 0
	LineNo          int
}
