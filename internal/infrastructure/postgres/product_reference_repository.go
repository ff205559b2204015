package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductReferenceRepository = (*ProductReferenceRepo)(nil)

// ProductReferenceRepo implementa el guard de relaciones: cuatro consultas
// EXISTS independientes sobre las tablas que referencian productos.
type ProductReferenceRepo struct {
	q Querier
}

// NewProductReferenceRepository construye el adaptador.
func NewProductReferenceRepository(q Querier) *ProductReferenceRepo {
	return &ProductReferenceRepo{q: q}
}

func (r *ProductReferenceRepo) exists(table, productID string) (bool, error) {
	// table viene de los cuatro métodos de abajo, nunca de entrada de usuario.
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE product_id = $1)`, table)
	var found bool
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&found); err != nil {
		return false, fmt.Errorf("exists %s: %w", table, err)
	}
	return found, nil
}

// HasPurchaseItems responde si alguna línea de compra referencia el producto.
func (r *ProductReferenceRepo) HasPurchaseItems(productID string) (bool, error) {
	return r.exists("purchase_items", productID)
}

// HasSalesItems responde si alguna línea de venta referencia el producto.
func (r *ProductReferenceRepo) HasSalesItems(productID string) (bool, error) {
	return r.exists("sales_items", productID)
}

// HasTransferItems responde si alguna línea de traslado referencia el producto.
func (r *ProductReferenceRepo) HasTransferItems(productID string) (bool, error) {
	return r.exists("transfer_items", productID)
}

// HasAuditItems responde si algún conteo de auditoría referencia el producto.
func (r *ProductReferenceRepo) HasAuditItems(productID string) (bool, error) {
	return r.exists("audit_items", productID)
}
