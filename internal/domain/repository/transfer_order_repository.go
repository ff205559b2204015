package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// TransferOrderRepository define el puerto de persistencia para órdenes de
// traslado. Las órdenes nunca se borran: son el libro histórico.
type TransferOrderRepository interface {
	Create(order *entity.TransferOrder) error
	GetByID(id string) (*entity.TransferOrder, error)
	// GetForUpdate bloquea la fila de la orden para serializar la transición
	// de estado (dos Complete concurrentes: uno gana, el otro ve el terminal).
	GetForUpdate(id string) (*entity.TransferOrder, error)
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.TransferOrder, error)
}
