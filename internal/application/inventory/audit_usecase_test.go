package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func auditStore() *memStore {
	s := newMemStore()
	s.addWarehouse("bodega-1")
	s.addProduct("prod-1")
	s.addProduct("prod-2")
	return s
}

func TestAudit_Open_QuedaOpenSinTocarLedger(t *testing.T) {
	s := auditStore()
	s.setStock("prod-1", "bodega-1", 6)
	uc := newAuditUC(s)

	out, err := uc.Open(context.Background(), "user-1", dto.OpenAuditRequest{
		WarehouseID: "bodega-1",
		Items: []dto.AuditItemRequest{
			{ProductID: "prod-1", CountedQuantity: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AuditStatusOpen, out.Status)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 1, out.Items[0].LineNo)

	assert.True(t, s.stock("prod-1", "bodega-1").Equal(decimal.NewFromInt(6)))
}

func TestAudit_Open_ConteoFallidoNoDejaAuditoriaTruncada(t *testing.T) {
	s := auditStore()
	uc := newAuditUCFailingCreate(s)

	_, err := uc.Open(context.Background(), "user-1", dto.OpenAuditRequest{
		WarehouseID: "bodega-1",
		Items: []dto.AuditItemRequest{
			{ProductID: "prod-1", CountedQuantity: decimal.NewFromInt(20)},
		},
	})
	require.Error(t, err)

	// El rollback elimina también el header: no hay auditoría OPEN a medias.
	assert.Empty(t, s.audits)
}

func TestAudit_Open_Validaciones(t *testing.T) {
	s := auditStore()
	uc := newAuditUC(s)
	ctx := context.Background()

	// Conteo negativo: error del operador, se rechaza al abrir
	_, err := uc.Open(ctx, "user-1", dto.OpenAuditRequest{
		WarehouseID: "bodega-1",
		Items: []dto.AuditItemRequest{
			{ProductID: "prod-1", CountedQuantity: decimal.NewFromInt(-1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin ítems
	_, err = uc.Open(ctx, "user-1", dto.OpenAuditRequest{WarehouseID: "bodega-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Bodega inexistente
	_, err = uc.Open(ctx, "user-1", dto.OpenAuditRequest{
		WarehouseID: "fantasma",
		Items: []dto.AuditItemRequest{
			{ProductID: "prod-1", CountedQuantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Producto inexistente
	_, err = uc.Open(ctx, "user-1", dto.OpenAuditRequest{
		WarehouseID: "bodega-1",
		Items: []dto.AuditItemRequest{
			{ProductID: "prod-fantasma", CountedQuantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAudit_Reconcile_CorrigeElLedgerALoContado(t *testing.T) {
	s := auditStore()
	s.setStock("prod-1", "bodega-1", 6)
	uc := newAuditUC(s)
	ctx := context.Background()

	out, err := uc.Open(ctx, "user-1", dto.OpenAuditRequest{
		WarehouseID: "bodega-1",
		Items: []dto.AuditItemRequest{
			{ProductID: "prod-1", CountedQuantity: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, uc.Reconcile(ctx, out.ID, "user-1"))

	assert.True(t, s.stock("prod-1", "bodega-1").Equal(decimal.NewFromInt(20)))

	audit, err := uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditStatusReconciled, audit.Status)

	// Un movimiento ADJUSTMENT con delta = contado - actual
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, s.movements[0].Type)
	assert.Equal(t, out.ID, s.movements[0].TransactionID)
	assert.True(t, s.movements[0].Quantity.Equal(decimal.NewFromInt(14)))
}

func TestAudit_Reconcile_HaciaAbajoYHaciaArriba(t *testing.T) {
	s := auditStore()
	s.setStock("prod-1", "bodega-1", 10)
	// prod-2 sin fila: se cuenta sobre cero
	uc := newAuditUC(s)
	ctx := context.Background()

	out, err := uc.Open(ctx, "user-1", dto.OpenAuditRequest{
		WarehouseID: "bodega-1",
		Items: []dto.AuditItemRequest{
			{ProductID: "prod-1", CountedQuantity: decimal.NewFromInt(3)},
			{ProductID: "prod-2", CountedQuantity: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, uc.Reconcile(ctx, out.ID, "user-1"))

	assert.True(t, s.stock("prod-1", "bodega-1").Equal(decimal.NewFromInt(3)))
	assert.True(t, s.stock("prod-2", "bodega-1").Equal(decimal.NewFromInt(5)))
	require.Len(t, s.movements, 2)
	assert.True(t, s.movements[0].Quantity.Equal(decimal.NewFromInt(-7)))
	assert.True(t, s.movements[1].Quantity.Equal(decimal.NewFromInt(5)))
}

func TestAudit_Reconcile_DeltaCeroNoRegistraMovimiento(t *testing.T) {
	s := auditStore()
	s.setStock("prod-1", "bodega-1", 6)
	uc := newAuditUC(s)
	ctx := context.Background()

	out, err := uc.Open(ctx, "user-1", dto.OpenAuditRequest{
		WarehouseID: "bodega-1",
		Items: []dto.AuditItemRequest{
			{ProductID: "prod-1", CountedQuantity: decimal.NewFromInt(6)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, uc.Reconcile(ctx, out.ID, "user-1"))

	assert.Empty(t, s.movements, "conteo igual al ledger no genera ajuste")
	audit, err := uc.GetByID(out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditStatusReconciled, audit.Status)
}

func TestAudit_Reconcile_DobleReconcile(t *testing.T) {
	s := auditStore()
	s.setStock("prod-1", "bodega-1", 6)
	uc := newAuditUC(s)
	ctx := context.Background()

	out, err := uc.Open(ctx, "user-1", dto.OpenAuditRequest{
		WarehouseID: "bodega-1",
		Items: []dto.AuditItemRequest{
			{ProductID: "prod-1", CountedQuantity: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, uc.Reconcile(ctx, out.ID, "user-1"))

	err = uc.Reconcile(ctx, out.ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// El segundo intento no volvió a aplicar deltas
	assert.True(t, s.stock("prod-1", "bodega-1").Equal(decimal.NewFromInt(20)))
	assert.Len(t, s.movements, 1)
}

func TestAudit_Reconcile_AuditoriaInexistente(t *testing.T) {
	s := auditStore()
	uc := newAuditUC(s)

	err := uc.Reconcile(context.Background(), "no-existe", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
