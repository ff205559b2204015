package inventory_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un memStore compartido y repos que lo envuelven. El
// fakeTxRunner toma una foto del estado antes de fn y la restaura si fn
// devuelve error, emulando el Rollback de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	items      map[string]*entity.InventoryItem // clave productID|warehouseID
	movements  []*entity.InventoryMovement
	transfers  map[string]*entity.TransferOrder
	audits     map[string]*entity.InventoryAudit
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
}

func newMemStore() *memStore {
	return &memStore{
		items:      map[string]*entity.InventoryItem{},
		transfers:  map[string]*entity.TransferOrder{},
		audits:     map[string]*entity.InventoryAudit{},
		products:   map[string]*entity.Product{},
		warehouses: map[string]*entity.Warehouse{},
	}
}

func itemKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

func (s *memStore) addProduct(id string) {
	s.products[id] = &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Producto " + id}
}

func (s *memStore) addWarehouse(id string) {
	s.warehouses[id] = &entity.Warehouse{ID: id, Name: "Bodega " + id}
}

func (s *memStore) setStock(productID, warehouseID string, qty int64) {
	s.items[itemKey(productID, warehouseID)] = &entity.InventoryItem{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    decimal.NewFromInt(qty),
		UpdatedAt:   time.Now(),
	}
}

func (s *memStore) stock(productID, warehouseID string) decimal.Decimal {
	if item, ok := s.items[itemKey(productID, warehouseID)]; ok {
		return item.Quantity
	}
	return decimal.Zero
}

// snapshot clona el estado mutable (items, movimientos, órdenes, auditorías).
func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.items {
		item := *v
		cp.items[k] = &item
	}
	for _, m := range s.movements {
		mov := *m
		cp.movements = append(cp.movements, &mov)
	}
	for k, v := range s.transfers {
		order := *v
		order.Items = append([]entity.TransferItem(nil), v.Items...)
		cp.transfers[k] = &order
	}
	for k, v := range s.audits {
		audit := *v
		audit.Items = append([]entity.AuditItem(nil), v.Items...)
		cp.audits[k] = &audit
	}
	cp.products = s.products
	cp.warehouses = s.warehouses
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.items = snap.items
	s.movements = snap.movements
	s.transfers = snap.transfers
	s.audits = snap.audits
}

// ── InventoryItemRepository ──────────────────────────────────────────────────

type fakeItemRepo struct{ s *memStore }

func (r *fakeItemRepo) Get(productID, warehouseID string) (*entity.InventoryItem, error) {
	if item, ok := r.s.items[itemKey(productID, warehouseID)]; ok {
		cp := *item
		return &cp, nil
	}
	// Sin fila = cantidad cero
	return &entity.InventoryItem{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

// GetForUpdate materializa la fila ausente antes de "bloquearla", igual que
// el adaptador real: la primera escritura sobre una clave nueva también
// serializa sobre una fila concreta.
func (r *fakeItemRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryItem, error) {
	key := itemKey(productID, warehouseID)
	if _, ok := r.s.items[key]; !ok {
		r.s.items[key] = &entity.InventoryItem{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    decimal.Zero,
			UpdatedAt:   time.Now(),
		}
	}
	cp := *r.s.items[key]
	return &cp, nil
}

func (r *fakeItemRepo) Upsert(item *entity.InventoryItem) error {
	cp := *item
	r.s.items[itemKey(item.ProductID, item.WarehouseID)] = &cp
	return nil
}

func (r *fakeItemRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, item := range r.s.items {
		if item.WarehouseID == warehouseID {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// ── InventoryMovementRepository ──────────────────────────────────────────────

type fakeMovementRepo struct{ s *memStore }

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProductAndWarehouse(productID, warehouseID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID && m.WarehouseID == warehouseID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── TransferOrderRepository ──────────────────────────────────────────────────

type fakeTransferRepo struct{ s *memStore }

func (r *fakeTransferRepo) Create(order *entity.TransferOrder) error {
	cp := *order
	cp.Items = append([]entity.TransferItem(nil), order.Items...)
	r.s.transfers[order.ID] = &cp
	return nil
}

func (r *fakeTransferRepo) GetByID(id string) (*entity.TransferOrder, error) {
	order, ok := r.s.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := *order
	cp.Items = append([]entity.TransferItem(nil), order.Items...)
	return &cp, nil
}

func (r *fakeTransferRepo) GetForUpdate(id string) (*entity.TransferOrder, error) {
	return r.GetByID(id)
}

func (r *fakeTransferRepo) UpdateStatus(id, status string) error {
	if order, ok := r.s.transfers[id]; ok {
		order.Status = status
		order.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeTransferRepo) List(limit, offset int) ([]*entity.TransferOrder, error) {
	var out []*entity.TransferOrder
	for _, order := range r.s.transfers {
		cp := *order
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── InventoryAuditRepository ─────────────────────────────────────────────────

type fakeAuditRepo struct{ s *memStore }

func (r *fakeAuditRepo) Create(audit *entity.InventoryAudit) error {
	cp := *audit
	cp.Items = append([]entity.AuditItem(nil), audit.Items...)
	r.s.audits[audit.ID] = &cp
	return nil
}

func (r *fakeAuditRepo) GetByID(id string) (*entity.InventoryAudit, error) {
	audit, ok := r.s.audits[id]
	if !ok {
		return nil, nil
	}
	cp := *audit
	cp.Items = append([]entity.AuditItem(nil), audit.Items...)
	return &cp, nil
}

func (r *fakeAuditRepo) GetForUpdate(id string) (*entity.InventoryAudit, error) {
	return r.GetByID(id)
}

func (r *fakeAuditRepo) UpdateStatus(id, status string) error {
	if audit, ok := r.s.audits[id]; ok {
		audit.Status = status
		audit.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeAuditRepo) List(limit, offset int) ([]*entity.InventoryAudit, error) {
	var out []*entity.InventoryAudit
	for _, audit := range r.s.audits {
		cp := *audit
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── ProductRepository / WarehouseRepository (solo lo que usan los use cases) ─

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error { delete(r.s.products, id); return nil }

type fakeWarehouseRepo struct{ s *memStore }

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { r.s.warehouses[w.ID] = w; return nil }

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// fakeTxRunner emula la transacción real. Los wrappers opcionales permiten
// inyectar repos que fallan para probar que el rollback deja todo intacto.
type fakeTxRunner struct {
	s            *memStore
	wrapTransfer func(repository.TransferOrderRepository) repository.TransferOrderRepository
	wrapAudit    func(repository.InventoryAuditRepository) repository.InventoryAuditRepository
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	movRepo repository.InventoryMovementRepository,
	transferRepo repository.TransferOrderRepository,
	auditRepo repository.InventoryAuditRepository,
) error) error {
	snap := tx.s.snapshot()
	var transferRepo repository.TransferOrderRepository = &fakeTransferRepo{tx.s}
	if tx.wrapTransfer != nil {
		transferRepo = tx.wrapTransfer(transferRepo)
	}
	var auditRepo repository.InventoryAuditRepository = &fakeAuditRepo{tx.s}
	if tx.wrapAudit != nil {
		auditRepo = tx.wrapAudit(auditRepo)
	}
	err := fn(&fakeItemRepo{tx.s}, &fakeMovementRepo{tx.s}, transferRepo, auditRepo)
	if err != nil {
		tx.s.restore(snap) // Rollback
		return err
	}
	return nil
}

// failingTransferRepo persiste el header y falla como si el insert de una
// línea hubiera caído a mitad de camino.
type failingTransferRepo struct {
	inner repository.TransferOrderRepository
}

func (r *failingTransferRepo) Create(order *entity.TransferOrder) error {
	header := *order
	header.Items = nil
	if err := r.inner.Create(&header); err != nil {
		return err
	}
	return errors.New("insert transfer item: conexión perdida")
}

func (r *failingTransferRepo) GetByID(id string) (*entity.TransferOrder, error) {
	return r.inner.GetByID(id)
}

func (r *failingTransferRepo) GetForUpdate(id string) (*entity.TransferOrder, error) {
	return r.inner.GetForUpdate(id)
}

func (r *failingTransferRepo) UpdateStatus(id, status string) error {
	return r.inner.UpdateStatus(id, status)
}

func (r *failingTransferRepo) List(limit, offset int) ([]*entity.TransferOrder, error) {
	return r.inner.List(limit, offset)
}

// failingAuditRepo idéntico, para auditorías.
type failingAuditRepo struct {
	inner repository.InventoryAuditRepository
}

func (r *failingAuditRepo) Create(audit *entity.InventoryAudit) error {
	header := *audit
	header.Items = nil
	if err := r.inner.Create(&header); err != nil {
		return err
	}
	return errors.New("insert audit item: conexión perdida")
}

func (r *failingAuditRepo) GetByID(id string) (*entity.InventoryAudit, error) {
	return r.inner.GetByID(id)
}

func (r *failingAuditRepo) GetForUpdate(id string) (*entity.InventoryAudit, error) {
	return r.inner.GetForUpdate(id)
}

func (r *failingAuditRepo) UpdateStatus(id, status string) error {
	return r.inner.UpdateStatus(id, status)
}

func (r *failingAuditRepo) List(limit, offset int) ([]*entity.InventoryAudit, error) {
	return r.inner.List(limit, offset)
}

// ── Constructores de conveniencia para los tests ─────────────────────────────

func newTransferUC(s *memStore) *inventory.TransferUseCase {
	return inventory.NewTransferUseCase(&fakeTxRunner{s: s}, &fakeTransferRepo{s}, &fakeProductRepo{s}, &fakeWarehouseRepo{s})
}

func newAuditUC(s *memStore) *inventory.AuditUseCase {
	return inventory.NewAuditUseCase(&fakeTxRunner{s: s}, &fakeAuditRepo{s}, &fakeProductRepo{s}, &fakeWarehouseRepo{s})
}

// Variantes cuyo Create falla después del header, para probar que la
// transacción no deja órdenes o auditorías con líneas truncadas.

func newTransferUCFailingCreate(s *memStore) *inventory.TransferUseCase {
	tx := &fakeTxRunner{s: s, wrapTransfer: func(inner repository.TransferOrderRepository) repository.TransferOrderRepository {
		return &failingTransferRepo{inner: inner}
	}}
	return inventory.NewTransferUseCase(tx, &fakeTransferRepo{s}, &fakeProductRepo{s}, &fakeWarehouseRepo{s})
}

func newAuditUCFailingCreate(s *memStore) *inventory.AuditUseCase {
	tx := &fakeTxRunner{s: s, wrapAudit: func(inner repository.InventoryAuditRepository) repository.InventoryAuditRepository {
		return &failingAuditRepo{inner: inner}
	}}
	return inventory.NewAuditUseCase(tx, &fakeAuditRepo{s}, &fakeProductRepo{s}, &fakeWarehouseRepo{s})
}
