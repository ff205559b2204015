package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// AuditUseCase maneja las auditorías de inventario: Open toma la foto de los
// conteos físicos; Reconcile corrige el ledger a lo contado y deja la
// auditoría RECONCILED (terminal, una sola aplicación).
type AuditUseCase struct {
	txRunner      TxRunner
	ledger        Ledger
	auditRepo     repository.InventoryAuditRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(
	txRunner TxRunner,
	auditRepo repository.InventoryAuditRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *AuditUseCase {
	return &AuditUseCase{
		txRunner:      txRunner,
		auditRepo:     auditRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Open crea una auditoría OPEN con los conteos por producto. Un conteo
// negativo es un error del operador y se rechaza aquí; así Reconcile nunca
// puede empujar el ledger por debajo de cero. La auditoría y sus conteos se
// insertan en una sola transacción: o queda completa o no queda nada.
func (uc *AuditUseCase) Open(ctx context.Context, userID string, in dto.OpenAuditRequest) (*dto.AuditResponse, error) {
	if in.WarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.CountedQuantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
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
	audit := &entity.InventoryAudit{
		ID:          uuid.New().String(),
		WarehouseID: in.WarehouseID,
		Status:      entity.AuditStatusOpen,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, item := range in.Items {
		audit.Items = append(audit.Items, entity.AuditItem{
			ID:              uuid.New().String(),
			AuditID:         audit.ID,
			ProductID:       item.ProductID,
			CountedQuantity: item.CountedQuantity,
			LineNo:          i + 1,
		})
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.InventoryItemRepository,
		_ repository.InventoryMovementRepository,
		_ repository.TransferOrderRepository,
		auditRepo repository.InventoryAuditRepository,
	) error {
		return auditRepo.Create(audit)
	})
	if err != nil {
		return nil, err
	}
	return toAuditResponse(audit), nil
}

// Reconcile aplica los deltas contra el ledger dentro de una transacción:
// bloquea la fila de la auditoría (debe seguir OPEN, si no ErrInvalidState),
// y por cada ítem ajusta delta = contado − actual bajo bloqueo de fila,
// registrando un movimiento ADJUSTMENT. El conjunto completo se aplica o
// nada; una segunda llamada falla sin tocar el ledger.
func (uc *AuditUseCase) Reconcile(ctx context.Context, auditID, userID string) error {
	if auditID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.InventoryMovementRepository,
		_ repository.TransferOrderRepository,
		auditRepo repository.InventoryAuditRepository,
	) error {
		audit, err := auditRepo.GetForUpdate(auditID)
		if err != nil {
			return err
		}
		if audit == nil {
			return domain.ErrNotFound
		}
		if audit.Status != entity.AuditStatusOpen {
			return domain.ErrInvalidState
		}

		now := time.Now()
		for _, item := range audit.Items {
			current, err := itemRepo.GetForUpdate(item.ProductID, audit.WarehouseID)
			if err != nil {
				return err
			}
			delta := item.CountedQuantity.Sub(current.Quantity)
			if delta.IsZero() {
				continue
			}
			if _, err := uc.ledger.Adjust(itemRepo, item.ProductID, audit.WarehouseID, delta); err != nil {
				return err
			}
			mov := &entity.InventoryMovement{
				TransactionID: audit.ID,
				ProductID:     item.ProductID,
				WarehouseID:   audit.WarehouseID,
				Type:          entity.MovementTypeADJUSTMENT,
				Quantity:      delta,
				Reference:     audit.ID,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		return auditRepo.UpdateStatus(audit.ID, entity.AuditStatusReconciled)
	})
}

// GetByID obtiene una auditoría por ID.
func (uc *AuditUseCase) GetByID(id string) (*dto.AuditResponse, error) {
	audit, err := uc.auditRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if audit == nil {
		return nil, nil
	}
	return toAuditResponse(audit), nil
}

// List lista auditorías con paginación.
func (uc *AuditUseCase) List(limit, offset int) (*dto.AuditListResponse, error) {
	list, err := uc.auditRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAuditResponse(a))
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toAuditResponse(a *entity.InventoryAudit) *dto.AuditResponse {
	if a == nil {
		return nil
	}
	resp := &dto.AuditResponse{
		ID:          a.ID,
		WarehouseID: a.WarehouseID,
		Status:      a.Status,
		CreatedBy:   a.CreatedBy,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	for _, item := range a.Items {
		resp.Items = append(resp.Items, dto.AuditItemResponse{
			ProductID:       item.ProductID,
			CountedQuantity: item.CountedQuantity,
			LineNo:          item.LineNo,
		})
	}
	return resp
}
