// Package testutil provee implementaciones en memoria de los puertos de
// persistencia para pruebas de casos de uso, sin PostgreSQL de por medio.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/placacenter/pos-api/internal/domain"
	"github.com/placacenter/pos-api/internal/domain/entity"
	"github.com/placacenter/pos-api/internal/domain/repository"
)

// Store estado compartido de los repositorios en memoria. Las transacciones
// se serializan con txMu (emulación gruesa del bloqueo de filas) y se
// revierten por snapshot si la función falla.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	categories map[string]*entity.Category
	suppliers  map[string]*entity.Supplier
	products   map[string]*entity.Product
	movements  []*entity.InventoryMovement
	skuSeq     int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		categories: make(map[string]*entity.Category),
		suppliers:  make(map[string]*entity.Supplier),
		products:   make(map[string]*entity.Product),
	}
}

// Categories repositorio de categorías sobre el store.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s: s} }

// Suppliers repositorio de proveedores sobre el store.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{s: s} }

// Products repositorio de productos sobre el store.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Movements repositorio del libro de movimientos sobre el store.
func (s *Store) Movements() repository.InventoryMovementRepository { return &movementRepo{s: s} }

// SeedProduct inserta un producto directamente en el store.
func (s *Store) SeedProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
}

// SeedCategory inserta una categoría directamente en el store.
func (s *Store) SeedCategory(c *entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.categories[c.ID] = &cp
}

// ProductByID devuelve una copia del producto almacenado, o nil.
func (s *Store) ProductByID(id string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// MovementCount cantidad de movimientos registrados.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// AllMovements devuelve copias de todos los movimientos en orden de inserción.
func (s *Store) AllMovements() []*entity.InventoryMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.InventoryMovement, 0, len(s.movements))
	for _, m := range s.movements {
		cp := *m
		out = append(out, &cp)
	}
	return out
}

// snapshot copia el estado completo para revertir transacciones fallidas.
func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := NewStore()
	for id, c := range s.categories {
		cp := *c
		snap.categories[id] = &cp
	}
	for id, sp := range s.suppliers {
		cp := *sp
		snap.suppliers[id] = &cp
	}
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for _, m := range s.movements {
		cp := *m
		snap.movements = append(snap.movements, &cp)
	}
	snap.skuSeq = s.skuSeq
	return snap
}

func (s *Store) restore(snap *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = snap.categories
	s.suppliers = snap.suppliers
	s.products = snap.products
	s.movements = snap.movements
	s.skuSeq = snap.skuSeq
}

// TxRunner ejecuta fn con repos del store, serializado, con rollback por
// snapshot si fn devuelve error.
type TxRunner struct {
	Store *Store
}

// Run implementa inventory.TxRunner.
func (t *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	t.Store.txMu.Lock()
	defer t.Store.txMu.Unlock()

	snap := t.Store.snapshot()
	err := fn(t.Store.Movements(), t.Store.Products(), t.Store.Categories(), t.Store.Suppliers())
	if err != nil {
		t.Store.restore(snap)
		return err
	}
	return nil
}

// ── Categorías ──────────────────────────────────────────────────────────────

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.Name == category.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

func (r *categoryRepo) GetByID(id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *categoryRepo) GetByName(name string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *categoryRepo) List(search string, limit, offset int) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.s.categories {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *categoryRepo) Update(category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

func (r *categoryRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.categories, id)
	return nil
}

// ── Proveedores ─────────────────────────────────────────────────────────────

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Create(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.suppliers {
		if existing.Name == supplier.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *supplier
	r.s.suppliers[supplier.ID] = &cp
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

func (r *supplierRepo) GetByName(name string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sp := range r.s.suppliers {
		if sp.Name == name {
			cp := *sp
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *supplierRepo) List(search string, limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Supplier
	for _, sp := range r.s.suppliers {
		if search == "" || strings.Contains(strings.ToLower(sp.Name), strings.ToLower(search)) {
			cp := *sp
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *supplierRepo) Update(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *supplier
	r.s.suppliers[supplier.ID] = &cp
	return nil
}

func (r *supplierRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SupplierID != nil && *p.SupplierID == id {
			p.SupplierID = nil
		}
	}
	delete(r.s.suppliers, id)
	return nil
}

// ── Productos ───────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	// El bloqueo de fila lo emula el TxRunner serializando transacciones.
	return r.GetByID(id)
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) FindByNameInCategory(name, categoryID string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.CategoryID == categoryID && strings.EqualFold(p.Name, name) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Search(query, categoryID string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q := strings.ToLower(query)
	var out []*entity.Product
	for _, p := range r.s.products {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.SKU), q) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *productRepo) ListLowStock() ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.Active && p.Stock <= p.ReorderThreshold {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *productRepo) Update(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *product
	// Stock y costo no se tocan por esta vía.
	cp.Stock = existing.Stock
	cp.AverageCost = existing.AverageCost
	r.s.products[product.ID] = &cp
	return nil
}

func (r *productRepo) UpdateStockAndCost(productID string, stock int, averageCost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.AverageCost = averageCost
	p.UpdatedAt = time.Now()
	return nil
}

func (r *productRepo) NextSKUSequence() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.skuSeq++
	return r.s.skuSeq, nil
}

func (r *productRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

// ── Movimientos ─────────────────────────────────────────────────────────────

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(movement *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *movement
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *movementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.filtered(func(m *entity.InventoryMovement) bool {
		return m.ProductID == productID && inRange(m.CreatedAt, from, to)
	}, limit, offset)
}

func (r *movementRepo) List(from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.filtered(func(m *entity.InventoryMovement) bool {
		return inRange(m.CreatedAt, from, to)
	}, limit, offset)
}

func (r *movementRepo) filtered(keep func(*entity.InventoryMovement) bool, limit, offset int) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if keep(m) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *movementRepo) ListSales(ctx context.Context, from, to time.Time) ([]repository.SaleRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.SaleRecord
	for _, m := range r.s.movements {
		if m.Kind != entity.MovementSalida || m.Reason != entity.ReasonSale {
			continue
		}
		if m.CreatedAt.Before(from) || m.CreatedAt.After(to) {
			continue
		}
		p, ok := r.s.products[m.ProductID]
		if !ok {
			continue
		}
		out = append(out, repository.SaleRecord{
			ProductID:   m.ProductID,
			ProductName: p.Name,
			Quantity:    m.Quantity,
			UnitCost:    m.UnitCost,
			SalePrice:   p.SalePrice,
			CreatedAt:   m.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
