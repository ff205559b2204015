package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una auditoría de inventario. OPEN → RECONCILED (terminal).
const (
	AuditStatusOpen       = "OPEN"
	AuditStatusReconciled = "RECONCILED"
)

// InventoryAudit es un conteo físico sobre una bodega. Al reconciliar, el
// ledger se corrige a las cantidades contadas y la auditoría queda terminal;
// una segunda reconciliación falla para impedir la doble aplicación.
type InventoryAudit struct {
	ID          string
	WarehouseID string
	Status      string
	Items       []AuditItem // en orden de línea
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuditItem es el conteo de un producto. CountedQuantity nunca es negativa:
// un conteo negativo se rechaza al abrir la auditoría como error del operador.
type AuditItem struct {
	ID              string
	AuditID         string
	ProductID       string
	CountedQuantity decimal.Decimal
	LineNo          int
}
