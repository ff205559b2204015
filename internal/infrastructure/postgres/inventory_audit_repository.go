package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.InventoryAuditRepository = (*InventoryAuditRepo)(nil)

// InventoryAuditRepo implementación sobre PostgreSQL (usable con pool o tx).
// La auditoría y sus conteos viven en inventory_audits / audit_items.
type InventoryAuditRepo struct {
	q Querier
}

// NewInventoryAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryAuditRepository(q Querier) *InventoryAuditRepo {
	return &InventoryAuditRepo{q: q}
}

// Create persiste la auditoría con sus conteos. Debe llamarse con un repo
// atado a una tx: fuera de ella, un insert de conteo fallido dejaría una
// auditoría OPEN con líneas truncadas.
func (r *InventoryAuditRepo) Create(audit *entity.InventoryAudit) error {
	query := `
		INSERT INTO inventory_audits (id, warehouse_id, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		audit.ID, audit.WarehouseID, audit.Status, audit.CreatedBy, audit.CreatedAt, audit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory audit: %w", err)
	}
	for _, item := range audit.Items {
		itemQuery := `
			INSERT INTO audit_items (id, audit_id, product_id, counted_quantity, line_no)
			VALUES ($1, $2, $3, $4, $5)`
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, item.AuditID, item.ProductID, item.CountedQuantity, item.LineNo,
		)
		if err != nil {
			return fmt.Errorf("insert audit item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la auditoría con sus conteos en orden de línea.
func (r *InventoryAuditRepo) GetByID(id string) (*entity.InventoryAudit, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la auditoría bloqueando su fila (SELECT FOR UPDATE)
// para impedir la doble reconciliación.
func (r *InventoryAuditRepo) GetForUpdate(id string) (*entity.InventoryAudit, error) {
	return r.get(id, true)
}

func (r *InventoryAuditRepo) get(id string, forUpdate bool) (*entity.InventoryAudit, error) {
	query := `
		SELECT id, warehouse_id, status, COALESCE(created_by, ''), created_at, updated_at
		FROM inventory_audits WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var audit entity.InventoryAudit
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&audit.ID, &audit.WarehouseID, &audit.Status, &audit.CreatedBy, &audit.CreatedAt, &audit.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory audit: %w", err)
	}
	items, err := r.listItems(audit.ID)
	if err != nil {
		return nil, err
	}
	audit.Items = items
	return &audit, nil
}

func (r *InventoryAuditRepo) listItems(auditID string) ([]entity.AuditItem, error) {
	query := `
		SELECT id, audit_id, product_id, counted_quantity, line_no
		FROM audit_items WHERE audit_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(context.Background(), query, auditID)
	if err != nil {
		return nil, fmt.Errorf("list audit items: %w", err)
	}
	defer rows.Close()
	var items []entity.AuditItem
	for rows.Next() {
		var item entity.AuditItem
		if err := rows.Scan(&item.ID, &item.AuditID, &item.ProductID, &item.CountedQuantity, &item.LineNo); err != nil {
			return nil, fmt.Errorf("scan audit item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateStatus cambia el estado de la auditoría.
func (r *InventoryAuditRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_audits SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update inventory audit status: %w", err)
	}
	return nil
}

// List lista auditorías, más reciente primero.
func (r *InventoryAuditRepo) List(limit, offset int) ([]*entity.InventoryAudit, error) {
	query := `
		SELECT id, warehouse_id, status, COALESCE(created_by, ''), created_at, updated_at
		FROM inventory_audits ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory audits: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryAudit
	for rows.Next() {
		var audit entity.InventoryAudit
		if err := rows.Scan(&audit.ID, &audit.WarehouseID, &audit.Status,
			&audit.CreatedBy, &audit.CreatedAt, &audit.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory audit: %w", err)
		}
		list = append(list, &audit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, audit := range list {
		items, err := r.listItems(audit.ID)
		if err != nil {
			return nil, err
		}
		audit.Items = items
	}
	return list, nil
}
