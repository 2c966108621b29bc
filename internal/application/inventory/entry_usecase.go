package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/placacenter/pos-api/internal/domain"
	"github.com/placacenter/pos-api/internal/domain/entity"
	domaininv "github.com/placacenter/pos-api/internal/domain/inventory"
	"github.com/placacenter/pos-api/internal/domain/repository"
)

// EntryUseCase registra una entrada manual de stock: movimiento ENTRADA,
// recálculo del costo promedio ponderado y actualización de la proyección
// del producto, todo en una transacción.
type EntryUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *EntryUseCase {
	return &EntryUseCase{txRunner: txRunner, productRepo: productRepo}
}

// EntryInput entrada manual de stock.
type EntryInput struct {
	ProductID string
	Quantity  int
	UnitCost  decimal.Decimal
	Reason    string
}

// RegisterEntry valida la entrada, y dentro de una transacción: bloquea la
// fila del producto, persiste el movimiento ENTRADA, aplica el motor de
// valuación y guarda stock y costo. Devuelve el producto actualizado.
func (uc *EntryUseCase) RegisterEntry(ctx context.Context, input EntryInput) (*entity.Product, error) {
	if input.Quantity <= 0 || input.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidMovement
	}

	// Pre-chequeo fuera de la transacción: referencia válida.
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var updated *entity.Product
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.CategoryRepository,
		_ repository.SupplierRepository,
	) error {
		updated, err = applyEntry(movRepo, productRepo, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyEntry ejecuta el paso de entrada con repos ya atados a una transacción.
// Lo comparte la importación masiva, que corre muchas filas en una sola tx.
func applyEntry(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	input EntryInput,
) (*entity.Product, error) {
	// Bloquea la fila del producto (SELECT FOR UPDATE) antes de leer la
	// proyección: la base del promedio debe ser el estado vivo.
	product, err := productRepo.GetByIDForUpdate(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	mov := &entity.InventoryMovement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Kind:      entity.MovementEntrada,
		Quantity:  input.Quantity,
		UnitCost:  input.UnitCost,
		Reason:    input.Reason,
		CreatedAt: now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	state := domaininv.State{Stock: product.Stock, AverageCost: product.AverageCost}
	next, err := domaininv.Apply(state, entity.MovementEntrada, input.Quantity, input.UnitCost)
	if err != nil {
		return nil, err
	}
	if err := productRepo.UpdateStockAndCost(product.ID, next.Stock, next.AverageCost); err != nil {
		return nil, err
	}

	product.Stock = next.Stock
	product.AverageCost = next.AverageCost
	product.UpdatedAt = now
	return product, nil
}
