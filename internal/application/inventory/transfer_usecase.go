package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TransferUseCase coordina el ciclo de vida de las órdenes de traslado:
// PENDING → COMPLETED | CANCELLED. Crear no mueve stock; Complete aplica
// débito origen + crédito destino por ítem dentro de una sola transacción.
type TransferUseCase struct {
	txRunner      TxRunner
	ledger        Ledger
	transferRepo  repository.TransferOrderRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferOrderRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Create valida y persiste una orden PENDING. Reglas: origen ≠ destino,
// ambas bodegas existen, al menos un ítem, toda cantidad > 0 y todo
// producto existe. No hay efecto sobre el ledger. La orden y sus líneas se
// insertan en una sola transacción: o queda completa o no queda nada.
func (uc *TransferUseCase) Create(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.SourceWarehouseID == "" || in.DestinationWarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceWarehouseID == in.DestinationWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	source, err := uc.warehouseRepo.GetByID(in.SourceWarehouseID)
	if err != nil {
		return nil, err
	}
	dest, err := uc.warehouseRepo.GetByID(in.DestinationWarehouseID)
	if err != nil {
		return nil, err
	}
	if source == nil || dest == nil {
		return nil, domain.ErrNotFound
	}
	for _, item := range in.Items {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	order := &entity.TransferOrder{
		ID:                     uuid.New().String(),
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		Status:                 entity.TransferStatusPending,
		CreatedBy:              userID,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	for i, item := range in.Items {
		order.Items = append(order.Items, entity.TransferItem{
			ID:              uuid.New().String(),
			TransferOrderID: order.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			LineNo:          i + 1,
		})
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.InventoryItemRepository,
		_ repository.InventoryMovementRepository,
		transferRepo repository.TransferOrderRepository,
		_ repository.InventoryAuditRepository,
	) error {
		return transferRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(order), nil
}

// Complete ejecuta la orden: dentro de una transacción bloquea la fila de la
// orden, verifica que siga PENDING, y por cada ítem (en orden de línea)
// debita el origen y acredita el destino vía Ledger.Adjust, registrando los
// dos movimientos TRANSFER. Cualquier fallo (p.ej. stock insuficiente, con
// el ítem culpable nombrado en el error) revierte todo: la orden queda
// PENDING y ningún ajuste parcial es observable.
func (uc *TransferUseCase) Complete(ctx context.Context, orderID, userID string) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
		transferRepo repository.TransferOrderRepository,
		_ repository.InventoryAuditRepository,
	) error {
		order, err := transferRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.TransferStatusPending {
			return domain.ErrInvalidState
		}

		now := time.Now()
		for _, item := range order.Items {
			// Débito origen: aquí puede fallar con StockError y abortar todo
			if _, err := uc.ledger.Adjust(itemRepo, item.ProductID, order.SourceWarehouseID, item.Quantity.Neg()); err != nil {
				return err
			}
			// Crédito destino
			if _, err := uc.ledger.Adjust(itemRepo, item.ProductID, order.DestinationWarehouseID, item.Quantity); err != nil {
				return err
			}
			outMov := &entity.InventoryMovement{
				TransactionID: order.ID,
				ProductID:     item.ProductID,
				WarehouseID:   order.SourceWarehouseID,
				Type:          entity.MovementTypeTRANSFER,
				Quantity:      item.Quantity.Neg(),
				Reference:     order.ID,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := movRepo.Create(outMov); err != nil {
				return err
			}
			inMov := &entity.InventoryMovement{
				TransactionID: order.ID,
				ProductID:     item.ProductID,
				WarehouseID:   order.DestinationWarehouseID,
				Type:          entity.MovementTypeTRANSFER,
				Quantity:      item.Quantity,
				Reference:     order.ID,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := movRepo.Create(inMov); err != nil {
				return err
			}
		}
		return transferRepo.UpdateStatus(order.ID, entity.TransferStatusCompleted)
	})
}

// Cancel marca la orden como CANCELLED sin tocar el ledger. Solo una orden
// PENDING puede cancelarse; los estados terminales no retroceden.
func (uc *TransferUseCase) Cancel(ctx context.Context, orderID string) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		_ repository.InventoryItemRepository,
		_ repository.InventoryMovementRepository,
		transferRepo repository.TransferOrderRepository,
		_ repository.InventoryAuditRepository,
	) error {
		order, err := transferRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.TransferStatusPending {
			return domain.ErrInvalidState
		}
		return transferRepo.UpdateStatus(order.ID, entity.TransferStatusCancelled)
	})
}

// GetByID obtiene una orden por ID.
func (uc *TransferUseCase) GetByID(id string) (*dto.TransferResponse, error) {
	order, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toTransferResponse(order), nil
}

// List lista órdenes con paginación.
func (uc *TransferUseCase) List(limit, offset int) (*dto.TransferListResponse, error) {
	list, err := uc.transferRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toTransferResponse(o))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toTransferResponse(o *entity.TransferOrder) *dto.TransferResponse {
	if o == nil {
		return nil
	}
	resp := &dto.TransferResponse{
		ID:                     o.ID,
		SourceWarehouseID:      o.SourceWarehouseID,
		DestinationWarehouseID: o.DestinationWarehouseID,
		Status:                 o.Status,
		CreatedBy:              o.CreatedBy,
		CreatedAt:              o.CreatedAt,
		UpdatedAt:              o.UpdatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, dto.TransferItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			LineNo:    item.LineNo,
		})
	}
	return resp
}
