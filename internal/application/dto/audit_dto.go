package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditItemRequest conteo físico de un producto.
type AuditItemRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
}

// OpenAuditRequest body para POST /api/audits.
type OpenAuditRequest struct {
	WarehouseID string             `json:"warehouse_id" validate:"required"`
	Items       []AuditItemRequest `json:"items" validate:"required,min=1"`
}

// AuditItemResponse conteo de un producto en respuestas.
type AuditItemResponse struct {
	ProductID       string          `json:"product_id"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
	LineNo          int             `json:"line_no"`
}

// AuditResponse salida de una auditoría.
type AuditResponse struct {
	ID          string              `json:"id"`
	WarehouseID string              `json:"warehouse_id"`
	Status      string              `json:"status"`
	Items       []AuditItemResponse `json:"items"`
	CreatedBy   string              `json:"created_by,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// AuditListResponse lista paginada de auditorías.
type AuditListResponse struct {
	Items []AuditResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
