package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// Clave compuesta (product_id, warehouse_id); sin fila = cantidad cero.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega.
// Si no hay fila devuelve un item con cantidad cero, nunca error.
func (r *InventoryItemRepo) Get(productID, warehouseID string) (*entity.InventoryItem, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory_items WHERE product_id = $1 AND warehouse_id = $2`
	var item entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&item.ProductID, &item.WarehouseID, &item.Quantity, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryItem{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &item, nil
}

// GetForUpdate materializa la fila si no existe y luego la bloquea
// (SELECT FOR UPDATE). Bloquear una fila ausente no bloquea nada: dos
// créditos concurrentes sobre una clave nunca almacenada leerían ambos
// cantidad cero y el último Upsert pisaría al primero. Con la fila
// materializada dentro de la tx, el segundo escritor espera el lock; si la
// tx termina en Rollback, la fila especulativa desaparece con ella.
func (r *InventoryItemRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryItem, error) {
	insert := `
		INSERT INTO inventory_items (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, productID, warehouseID); err != nil {
		return nil, fmt.Errorf("materialize inventory item: %w", err)
	}
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory_items WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var item entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&item.ProductID, &item.WarehouseID, &item.Quantity, &item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get inventory item for update: %w", err)
	}
	return &item, nil
}

// Upsert inserta o actualiza la cantidad (por producto y bodega). Las filas
// nacen aquí con el primer movimiento y nunca se borran.
func (r *InventoryItemRepo) Upsert(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, item.ProductID, item.WarehouseID, item.Quantity)
	if err != nil {
		return fmt.Errorf("upsert inventory item: %w", err)
	}
	return nil
}

// ListByWarehouse lista los niveles de una bodega con paginación.
func (r *InventoryItemRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory_items WHERE warehouse_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		var item entity.InventoryItem
		if err := rows.Scan(&item.ProductID, &item.WarehouseID, &item.Quantity, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
