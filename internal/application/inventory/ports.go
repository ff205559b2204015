package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad: si fn devuelve error,
// todo ajuste ya aplicado en esa llamada se revierte (Rollback).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
		transferRepo repository.TransferOrderRepository,
		auditRepo repository.InventoryAuditRepository,
	) error) error
}
