package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/placacenter/pos-api/internal/domain"
	"github.com/placacenter/pos-api/internal/domain/entity"
	"github.com/placacenter/pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, sku, category_id, supplier_id, sale_price, average_cost, stock, reorder_threshold, unit, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Stock y costo inician en 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.SKU, product.CategoryID, product.SupplierID,
		product.SalePrice, product.AverageCost, product.Stock, product.ReorderThreshold,
		product.Unit, product.Active, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción: el bloqueo serializa las
// mutaciones concurrentes de stock/costo sobre el mismo producto.
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// FindByNameInCategory busca por nombre insensible a mayúsculas dentro de
// una categoría (importación masiva sin SKU).
func (r *ProductRepo) FindByNameInCategory(name, categoryID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE LOWER(name) = LOWER($1) AND category_id = $2 LIMIT 1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, name, categoryID).Scan(scanTargets(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find product by name: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(scanTargets(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func scanTargets(p *entity.Product) []any {
	return []any{
		&p.ID, &p.Name, &p.SKU, &p.CategoryID, &p.SupplierID, &p.SalePrice, &p.AverageCost,
		&p.Stock, &p.ReorderThreshold, &p.Unit, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	}
}

// Search lista productos con filtro de texto libre sobre nombre y SKU y
// filtro opcional de categoría, ordenados por nombre.
func (r *ProductRepo) Search(query, categoryID string, limit, offset int) ([]*entity.Product, error) {
	sql := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR category_id = $2::uuid)
		ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), sql, query, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return collectProducts(rows)
}

// ListLowStock devuelve productos activos con stock en o bajo el mínimo,
// ordenados por nombre.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	sql := `
		SELECT ` + productColumns + `
		FROM products
		WHERE active AND stock <= reorder_threshold
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), sql)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(scanTargets(&p)...); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza campos de catálogo. No toca stock ni average_cost: esos
// los gobierna UpdateStockAndCost dentro de los flujos transaccionales.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, sku = $3, category_id = $4, supplier_id = $5, sale_price = $6,
		    reorder_threshold = $7, unit = $8, active = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.SKU, product.CategoryID, product.SupplierID,
		product.SalePrice, product.ReorderThreshold, product.Unit, product.Active, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStockAndCost actualiza la proyección valuada (usado por el motor de
// inventario dentro de una transacción con la fila ya bloqueada).
func (r *ProductRepo) UpdateStockAndCost(productID string, stock int, averageCost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, average_cost = $3, updated_at = now() WHERE id = $1`,
		productID, stock, averageCost)
	if err != nil {
		return fmt.Errorf("update product stock/cost: %w", err)
	}
	return nil
}

// NextSKUSequence devuelve el siguiente valor de products_sku_seq para
// sintetizar SKUs de importación (monótona entre transacciones concurrentes).
func (r *ProductRepo) NextSKUSequence() (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('products_sku_seq')`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sku sequence: %w", err)
	}
	return n, nil
}

// Delete elimina un producto. Sus movimientos se eliminan en cascada.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
