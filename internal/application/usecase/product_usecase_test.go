package usecase_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products    map[string]*entity.Product
	getBySKUErr error // si se define, GetBySKU falla
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	if r.getBySKUErr != nil {
		return nil, r.getBySKUErr
	}
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error { delete(r.products, id); return nil }

// fakeRefRepo simula las cuatro tablas de relación con flags.
type fakeRefRepo struct {
	purchases map[string]bool
	sales     map[string]bool
	transfers map[string]bool
	audits    map[string]bool
}

func newFakeRefRepo() *fakeRefRepo {
	return &fakeRefRepo{
		purchases: map[string]bool{},
		sales:     map[string]bool{},
		transfers: map[string]bool{},
		audits:    map[string]bool{},
	}
}

func (r *fakeRefRepo) HasPurchaseItems(id string) (bool, error) { return r.purchases[id], nil }
func (r *fakeRefRepo) HasSalesItems(id string) (bool, error)    { return r.sales[id], nil }
func (r *fakeRefRepo) HasTransferItems(id string) (bool, error) { return r.transfers[id], nil }
func (r *fakeRefRepo) HasAuditItems(id string) (bool, error)    { return r.audits[id], nil }

func createProduct(t *testing.T, uc *usecase.ProductUseCase, sku string) *dto.ProductResponse {
	t.Helper()
	out, err := uc.Create(entity.RoleAdmin, dto.CreateProductRequest{
		SKU:       sku,
		Name:      "Producto " + sku,
		CostPrice: decimal.NewFromInt(100),
		SellPrice: decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	return out
}

// ── Tests CRUD ───────────────────────────────────────────────────────────────

func TestProduct_Create_SKUDuplicado(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), newFakeRefRepo())
	createProduct(t, uc, "SKU-1")

	_, err := uc.Create(entity.RoleAdmin, dto.CreateProductRequest{
		SKU:  "SKU-1",
		Name: "Otro producto",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Un fallo de infraestructura en el chequeo de SKU se propaga, no se lee
// como "SKU disponible".
func TestProduct_Create_ErrorDeRepositorioSePropaga(t *testing.T) {
	repo := newFakeProductRepo()
	repo.getBySKUErr = errors.New("conexión perdida")
	uc := usecase.NewProductUseCase(repo, newFakeRefRepo())

	_, err := uc.Create(entity.RoleAdmin, dto.CreateProductRequest{
		SKU:  "SKU-1",
		Name: "Producto",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, repo.products, "no debe persistirse ningún producto")
}

func TestProduct_Create_PrecioNegativo(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), newFakeRefRepo())

	_, err := uc.Create(entity.RoleAdmin, dto.CreateProductRequest{
		SKU:       "SKU-1",
		Name:      "Producto",
		CostPrice: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Tests proyección de CostPrice por rol ────────────────────────────────────

func TestProduct_GetByID_AdminVeCostPrice(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), newFakeRefRepo())
	created := createProduct(t, uc, "SKU-1")

	out, err := uc.GetByID(entity.RoleAdmin, created.ID)
	require.NoError(t, err)
	require.NotNil(t, out.CostPrice)
	assert.True(t, out.CostPrice.Equal(decimal.NewFromInt(100)))
}

func TestProduct_GetByID_ManagerYStaffNoVenCostPrice(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), newFakeRefRepo())
	created := createProduct(t, uc, "SKU-1")

	for _, role := range []string{entity.RoleManager, entity.RoleStaff} {
		out, err := uc.GetByID(role, created.ID)
		require.NoError(t, err)
		assert.Nil(t, out.CostPrice, "rol %s no debe ver cost_price", role)

		// El campo desaparece del JSON, no sale como null
		raw, err := json.Marshal(out)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "cost_price",
			"el JSON para rol %s no debe mencionar cost_price", role)
	}
}

func TestProduct_List_ProyectaPorRol(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), newFakeRefRepo())
	createProduct(t, uc, "SKU-1")
	createProduct(t, uc, "SKU-2")

	adminList, err := uc.List(entity.RoleAdmin, 20, 0)
	require.NoError(t, err)
	require.Len(t, adminList.Items, 2)
	for _, item := range adminList.Items {
		assert.NotNil(t, item.CostPrice)
	}

	staffList, err := uc.List(entity.RoleStaff, 20, 0)
	require.NoError(t, err)
	for _, item := range staffList.Items {
		assert.Nil(t, item.CostPrice)
	}
}

// ── Tests guard de relaciones ────────────────────────────────────────────────

func TestProduct_Delete_SinReferencias(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, newFakeRefRepo())
	created := createProduct(t, uc, "SKU-1")

	ok, err := uc.CanDelete(created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, uc.Delete(created.ID))
	out, err := uc.GetByID(entity.RoleAdmin, created.ID)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProduct_Delete_BloqueadoPorCadaRelacion(t *testing.T) {
	cases := []struct {
		name string
		mark func(ref *fakeRefRepo, id string)
	}{
		{"compras", func(ref *fakeRefRepo, id string) { ref.purchases[id] = true }},
		{"ventas", func(ref *fakeRefRepo, id string) { ref.sales[id] = true }},
		{"traslados", func(ref *fakeRefRepo, id string) { ref.transfers[id] = true }},
		{"auditorias", func(ref *fakeRefRepo, id string) { ref.audits[id] = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeProductRepo()
			ref := newFakeRefRepo()
			uc := usecase.NewProductUseCase(repo, ref)
			created := createProduct(t, uc, "SKU-1")
			tc.mark(ref, created.ID)

			ok, err := uc.CanDelete(created.ID)
			require.NoError(t, err)
			assert.False(t, ok)

			err = uc.Delete(created.ID)
			assert.ErrorIs(t, err, domain.ErrConflict)

			// El producto sigue existiendo
			out, err := uc.GetByID(entity.RoleAdmin, created.ID)
			require.NoError(t, err)
			assert.NotNil(t, out)
		})
	}
}

func TestProduct_Delete_Inexistente(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo(), newFakeRefRepo())
	assert.ErrorIs(t, uc.Delete("no-existe"), domain.ErrNotFound)
}
