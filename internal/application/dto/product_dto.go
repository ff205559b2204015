package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/authz"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SellPrice   decimal.Decimal `json:"sell_price"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	CategoryID  *string          `json:"category_id"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	SellPrice   *decimal.Decimal `json:"sell_price"`
}

// ProductResponse salida de un producto. CostPrice es un puntero con omitempty:
// solo se asigna cuando el rol tiene permiso view_cost_price, así el campo
// desaparece del JSON para cualquier principal no autorizado.
type ProductResponse struct {
	ID          string           `json:"id"`
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CategoryID  string           `json:"category_id,omitempty"`
	CostPrice   *decimal.Decimal `json:"cost_price,omitempty"`
	SellPrice   decimal.Decimal  `json:"sell_price"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductResponse proyecta un producto según el rol del caller. Esta es la
// única vía para convertir entity.Product en payload: todo producto que sale
// por HTTP (incluidos los anidados en inventario y movimientos) pasa por aquí.
func ToProductResponse(role string, p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	resp := &ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		SellPrice:   p.SellPrice,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if authz.Can(role, authz.ActionViewCostPrice) {
		cost := p.CostPrice
		resp.CostPrice = &cost
	}
	return resp
}
