package sale

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/placacenter/pos-api/internal/application/dto"
	appinv "github.com/placacenter/pos-api/internal/application/inventory"
	"github.com/placacenter/pos-api/internal/domain"
	"github.com/placacenter/pos-api/internal/domain/entity"
	domaininv "github.com/placacenter/pos-api/internal/domain/inventory"
	"github.com/placacenter/pos-api/internal/domain/repository"
)

// CheckoutUseCase confirma la venta de un carrito en dos fases: validación
// sin bloqueo y commit transaccional con bloqueo de fila por producto.
// Contrato: el stock jamás queda negativo, ni bajo checkouts concurrentes.
type CheckoutUseCase struct {
	txRunner    appinv.TxRunner
	productRepo repository.ProductRepository
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(txRunner appinv.TxRunner, productRepo repository.ProductRepository) *CheckoutUseCase {
	return &CheckoutUseCase{txRunner: txRunner, productRepo: productRepo}
}

// Checkout valida el carrito completo y, si todo cabe, descuenta stock y
// registra una SALIDA por línea al costo promedio tomado bajo el bloqueo.
// El precio cobrado es el unit_price de la línea (precio al momento de
// agregar al carrito), independiente de la base de costo.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, lines []dto.CartLine) (*dto.Receipt, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 || l.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	// Cantidad total requerida por producto: dos líneas del mismo producto
	// compiten por el mismo stock y se validan juntas.
	needed := aggregate(lines)

	// Fase 1 — validación de solo lectura, fuera de todo bloqueo. Reporta
	// TODAS las líneas ofensoras, no solo la primera.
	var shortages []domain.StockShortage
	for _, req := range needed {
		product, err := uc.productRepo.GetByID(req.productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if req.quantity > product.Stock {
			shortages = append(shortages, domain.StockShortage{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   req.quantity,
				Available:   product.Stock,
			})
		}
	}
	if len(shortages) > 0 {
		return nil, &domain.StockShortageError{Shortages: shortages}
	}

	// Fase 2 — commit atómico: bloquear, releer, descontar, registrar.
	var receipt *dto.Receipt
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.CategoryRepository,
		_ repository.SupplierRepository,
	) error {
		var err error
		receipt, err = commit(movRepo, productRepo, lines, needed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

type requirement struct {
	productID string
	quantity  int
}

// aggregate suma cantidades por producto en orden ascendente de ID. El orden
// determinista de bloqueo evita deadlocks entre checkouts cruzados.
func aggregate(lines []dto.CartLine) []requirement {
	byProduct := make(map[string]int, len(lines))
	for _, l := range lines {
		byProduct[l.ProductID] += l.Quantity
	}
	ids := make([]string, 0, len(byProduct))
	for id := range byProduct {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	reqs := make([]requirement, 0, len(ids))
	for _, id := range ids {
		reqs = append(reqs, requirement{productID: id, quantity: byProduct[id]})
	}
	return reqs
}

// commit corre dentro de la transacción. Si la relectura bajo bloqueo revela
// stock insuficiente (carrera perdida contra otra venta), devuelve error y la
// transacción completa se revierte: nada queda a medias.
func commit(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	lines []dto.CartLine,
	needed []requirement,
) (*dto.Receipt, error) {
	now := time.Now()
	locked := make(map[string]*entity.Product, len(needed))

	for _, req := range needed {
		product, err := productRepo.GetByIDForUpdate(req.productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if req.quantity > product.Stock {
			return nil, &domain.StockShortageError{Shortages: []domain.StockShortage{{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   req.quantity,
				Available:   product.Stock,
			}}}
		}
		state := domaininv.State{Stock: product.Stock, AverageCost: product.AverageCost}
		next, err := domaininv.Apply(state, entity.MovementSalida, req.quantity, product.AverageCost)
		if err != nil {
			return nil, err
		}
		if err := productRepo.UpdateStockAndCost(product.ID, next.Stock, next.AverageCost); err != nil {
			return nil, err
		}
		locked[product.ID] = product
	}

	// Una SALIDA por línea del carrito, con la base de costo tomada bajo el
	// mismo bloqueo que el descuento de stock (atomicidad costo+stock).
	receipt := &dto.Receipt{Total: decimal.Zero}
	for _, l := range lines {
		product := locked[l.ProductID]
		mov := &entity.InventoryMovement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Kind:      entity.MovementSalida,
			Quantity:  l.Quantity,
			UnitCost:  product.AverageCost,
			Reason:    entity.ReasonSale,
			CreatedAt: now,
		}
		if err := movRepo.Create(mov); err != nil {
			return nil, err
		}
		subtotal := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		receipt.Lines = append(receipt.Lines, dto.ReceiptLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    subtotal,
		})
		receipt.Total = receipt.Total.Add(subtotal)
	}
	return receipt, nil
}
