package repository

import "github.com/placacenter/pos-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	// GetByName busca por nombre exacto (sensible a mayúsculas).
	GetByName(name string) (*entity.Supplier, error)
	List(search string, limit, offset int) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	// Delete elimina el proveedor; los productos que lo referencian quedan
	// con proveedor nulo (SET NULL en el esquema).
	Delete(id string) error
}
