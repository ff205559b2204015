package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItemRequest línea de una orden de traslado.
type TransferItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	SourceWarehouseID      string                `json:"source_warehouse_id" validate:"required"`
	DestinationWarehouseID string                `json:"destination_warehouse_id" validate:"required"`
	Items                  []TransferItemRequest `json:"items" validate:"required,min=1"`
}

// TransferItemResponse línea de una orden en respuestas.
type TransferItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	LineNo    int             `json:"line_no"`
}

// TransferResponse salida de una orden de traslado.
type TransferResponse struct {
	ID                     string                 `json:"id"`
	SourceWarehouseID      string                 `json:"source_warehouse_id"`
	DestinationWarehouseID string                 `json:"destination_warehouse_id"`
	Status                 string                 `json:"status"`
	Items                  []TransferItemResponse `json:"items"`
	CreatedBy              string                 `json:"created_by,omitempty"`
	CreatedAt              time.Time              `json:"created_at"`
	UpdatedAt              time.Time              `json:"updated_at"`
}

// TransferListResponse lista paginada de órdenes.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
