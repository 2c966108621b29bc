package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/placacenter/pos-api/internal/domain/entity"
	"github.com/placacenter/pos-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, tax_id, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Name, nullable(supplier.TaxID), nullable(supplier.Phone),
		supplier.CreatedAt, supplier.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.getOne(`SELECT id, name, tax_id, phone, created_at, updated_at FROM suppliers WHERE id = $1`, id)
}

// GetByName busca por nombre exacto (sensible a mayúsculas).
func (r *SupplierRepo) GetByName(name string) (*entity.Supplier, error) {
	return r.getOne(`SELECT id, name, tax_id, phone, created_at, updated_at FROM suppliers WHERE name = $1`, name)
}

func (r *SupplierRepo) getOne(query string, arg any) (*entity.Supplier, error) {
	var s entity.Supplier
	var taxID, phone *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&s.ID, &s.Name, &taxID, &phone, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	if taxID != nil {
		s.TaxID = *taxID
	}
	if phone != nil {
		s.Phone = *phone
	}
	return &s, nil
}

// List lista proveedores ordenados por nombre, con filtro de texto sobre
// nombre y NIT.
func (r *SupplierRepo) List(search string, limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT id, name, tax_id, phone, created_at, updated_at
		FROM suppliers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR tax_id ILIKE '%' || $1 || '%')
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		var taxID, phone *string
		if err := rows.Scan(&s.ID, &s.Name, &taxID, &phone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		if taxID != nil {
			s.TaxID = *taxID
		}
		if phone != nil {
			s.Phone = *phone
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza los datos del proveedor.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE suppliers SET name = $2, tax_id = $3, phone = $4, updated_at = $5 WHERE id = $1`,
		supplier.ID, supplier.Name, nullable(supplier.TaxID), nullable(supplier.Phone), supplier.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// Delete elimina el proveedor. El FK de products es ON DELETE SET NULL: los
// productos que lo referencian quedan sin proveedor.
func (r *SupplierRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

// nullable convierte "" en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
