package repository

import (
	"github.com/placacenter/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Stock y AverageCost se actualizan solo vía UpdateStockAndCost, dentro de
// la transacción del flujo de entrada o de venta.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetByIDForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// FindByNameInCategory busca por nombre (insensible a mayúsculas) dentro
	// de una categoría. Usado por la importación masiva cuando no hay SKU.
	FindByNameInCategory(name, categoryID string) (*entity.Product, error)
	// Search lista productos con filtro de texto libre sobre nombre y SKU,
	// y filtro opcional por categoría. Orden por nombre.
	Search(query, categoryID string, limit, offset int) ([]*entity.Product, error)
	// ListLowStock devuelve productos activos con stock <= stock mínimo,
	// ordenados por nombre (consumido por la alerta externa de stock bajo).
	ListLowStock() ([]*entity.Product, error)
	// Update actualiza solo campos de catálogo (nombre, categoría, proveedor,
	// precio, unidad, stock mínimo, activo). Nunca stock ni costo.
	Update(product *entity.Product) error
	UpdateStockAndCost(productID string, stock int, averageCost decimal.Decimal) error
	// NextSKUSequence devuelve el siguiente valor de la secuencia para
	// sintetizar SKUs en la importación masiva (monótona, sin colisiones
	// bajo importaciones concurrentes).
	NextSKUSequence() (int64, error)
	Delete(id string) error
}
