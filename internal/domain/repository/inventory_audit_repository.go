package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// InventoryAuditRepository define el puerto de persistencia para auditorías.
// Las auditorías nunca se borran: son el libro histórico de conteos.
type InventoryAuditRepository interface {
	Create(audit *entity.InventoryAudit) error
	GetByID(id string) (*entity.InventoryAudit, error)
	// GetForUpdate bloquea la fila de la auditoría para serializar la
	// transición OPEN → RECONCILED e impedir la doble aplicación.
	GetForUpdate(id string) (*entity.InventoryAudit, error)
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.InventoryAudit, error)
}
