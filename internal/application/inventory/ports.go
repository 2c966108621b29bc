package inventory

import (
	"context"

	"github.com/placacenter/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad: o el movimiento y la
// actualización del producto se ven juntos, o no se ve nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}
