package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TransferOrderRepository = (*TransferOrderRepo)(nil)

// TransferOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
// La orden y sus ítems viven en transfer_orders / transfer_items.
type TransferOrderRepo struct {
	q Querier
}

// NewTransferOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferOrderRepository(q Querier) *TransferOrderRepo {
	return &TransferOrderRepo{q: q}
}

// Create persiste la orden con sus ítems. Debe llamarse con un repo atado a
// una tx: fuera de ella, un insert de ítem fallido dejaría una orden PENDING
// con líneas truncadas.
func (r *TransferOrderRepo) Create(order *entity.TransferOrder) error {
	query := `
		INSERT INTO transfer_orders (id, source_warehouse_id, destination_warehouse_id, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.SourceWarehouseID, order.DestinationWarehouseID,
		order.Status, order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer order: %w", err)
	}
	for _, item := range order.Items {
		itemQuery := `
			INSERT INTO transfer_items (id, transfer_order_id, product_id, quantity, line_no)
			VALUES ($1, $2, $3, $4, $5)`
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.TransferOrderID, item.ProductID, item.Quantity, item.LineNo,
		)
		if err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus ítems en orden de línea.
func (r *TransferOrderRepo) GetByID(id string) (*entity.TransferOrder, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la orden bloqueando su fila (SELECT FOR UPDATE) para
// serializar la transición de estado.
func (r *TransferOrderRepo) GetForUpdate(id string) (*entity.TransferOrder, error) {
	return r.get(id, true)
}

func (r *TransferOrderRepo) get(id string, forUpdate bool) (*entity.TransferOrder, error) {
	query := `
		SELECT id, source_warehouse_id, destination_warehouse_id, status, COALESCE(created_by, ''), created_at, updated_at
		FROM transfer_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var order entity.TransferOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&order.ID, &order.SourceWarehouseID, &order.DestinationWarehouseID,
		&order.Status, &order.CreatedBy, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer order: %w", err)
	}
	items, err := r.listItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *TransferOrderRepo) listItems(orderID string) ([]entity.TransferItem, error) {
	query := `
		SELECT id, transfer_order_id, product_id, quantity, line_no
		FROM transfer_items WHERE transfer_order_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	var items []entity.TransferItem
	for rows.Next() {
		var item entity.TransferItem
		if err := rows.Scan(&item.ID, &item.TransferOrderID, &item.ProductID, &item.Quantity, &item.LineNo); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateStatus cambia el estado de la orden.
func (r *TransferOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE transfer_orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update transfer order status: %w", err)
	}
	return nil
}

// List lista órdenes, más reciente primero.
func (r *TransferOrderRepo) List(limit, offset int) ([]*entity.TransferOrder, error) {
	query := `
		SELECT id, source_warehouse_id, destination_warehouse_id, status, COALESCE(created_by, ''), created_at, updated_at
		FROM transfer_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfer orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransferOrder
	for rows.Next() {
		var order entity.TransferOrder
		if err := rows.Scan(&order.ID, &order.SourceWarehouseID, &order.DestinationWarehouseID,
			&order.Status, &order.CreatedBy, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer order: %w", err)
		}
		list = append(list, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, order := range list {
		items, err := r.listItems(order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}
	return list, nil
}
