package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/placacenter/pos-api/internal/application/dto"
	"github.com/placacenter/pos-api/internal/domain"
	"github.com/placacenter/pos-api/internal/domain/entity"
	"github.com/placacenter/pos-api/internal/domain/repository"
)

// Categoría de respaldo para filas que crean producto sin categoría.
const fallbackCategoryName = "General"

// ImportUseCase reconcilia un lote de registros de entrada: resuelve o crea
// categorías, proveedores y productos por fila, y aplica la entrada de stock
// con el motor de valuación. Todo el lote corre en UNA transacción: las filas
// malformadas se omiten y se cuentan, pero un fallo duro a mitad de lote
// revierte todo lo aplicado.
type ImportUseCase struct {
	txRunner TxRunner
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(txRunner TxRunner) *ImportUseCase {
	return &ImportUseCase{txRunner: txRunner}
}

// Import procesa el lote y devuelve el resumen de aplicadas/creadas/omitidas.
func (uc *ImportUseCase) Import(ctx context.Context, records []dto.ImportRecord) (*dto.ImportSummary, error) {
	if len(records) == 0 {
		return nil, domain.ErrInvalidInput
	}

	summary := &dto.ImportSummary{}
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		categoryRepo repository.CategoryRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		for _, rec := range records {
			applied, err := importRow(movRepo, productRepo, categoryRepo, supplierRepo, rec, summary)
			if err != nil {
				// Fallo transaccional (no de la fila): aborta el lote completo.
				return err
			}
			if applied {
				summary.RowsApplied++
			} else {
				summary.RowsSkipped++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// importRow aplica una fila. Devuelve false (sin error) cuando la fila está
// malformada y debe omitirse; error solo ante fallos que invalidan el lote.
func importRow(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	rec dto.ImportRecord,
	summary *dto.ImportSummary,
) (bool, error) {
	name := strings.TrimSpace(rec.Product)
	if name == "" {
		return false, nil
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(rec.Quantity))
	if err != nil || quantity <= 0 {
		return false, nil
	}
	unitCost, err := decimal.NewFromString(strings.TrimSpace(rec.UnitCost))
	if err != nil || unitCost.IsNegative() {
		return false, nil
	}

	// Categoría: por nombre exacto (sensible a mayúsculas); crear si no existe.
	categoryName := strings.TrimSpace(rec.Category)
	if categoryName == "" {
		categoryName = fallbackCategoryName
	}
	category, err := categoryRepo.GetByName(categoryName)
	if err != nil {
		return false, err
	}
	if category == nil {
		category = &entity.Category{ID: uuid.New().String(), Name: categoryName, CreatedAt: time.Now()}
		if err := categoryRepo.Create(category); err != nil {
			return false, err
		}
		summary.CategoriesCreated++
	}

	// Proveedor: opcional, por nombre exacto; crear si no existe.
	var supplierID *string
	if supplierName := strings.TrimSpace(rec.Supplier); supplierName != "" {
		supplier, err := supplierRepo.GetByName(supplierName)
		if err != nil {
			return false, err
		}
		if supplier == nil {
			supplier = &entity.Supplier{ID: uuid.New().String(), Name: supplierName, CreatedAt: time.Now()}
			if err := supplierRepo.Create(supplier); err != nil {
				return false, err
			}
			summary.SuppliersCreated++
		}
		supplierID = &supplier.ID
	}

	salePrice, hasSalePrice := parseSalePrice(rec.SalePrice)

	product, err := resolveProduct(productRepo, rec, name, category.ID, supplierID, salePrice, summary)
	if err != nil {
		return false, err
	}

	// Fila repetida sobre un producto existente: actualiza campos de catálogo
	// si la fila los trae (last-row-wins dentro del lote).
	if !product.justCreated {
		p := product.Product
		changed := false
		if strings.TrimSpace(rec.Category) != "" && p.CategoryID != category.ID {
			p.CategoryID = category.ID
			changed = true
		}
		if supplierID != nil && (p.SupplierID == nil || *p.SupplierID != *supplierID) {
			p.SupplierID = supplierID
			changed = true
		}
		if hasSalePrice && !p.SalePrice.Equal(salePrice) {
			p.SalePrice = salePrice
			changed = true
		}
		if changed {
			p.UpdatedAt = time.Now()
			if err := productRepo.Update(p); err != nil {
				return false, err
			}
		}
	}

	_, err = applyEntry(movRepo, productRepo, EntryInput{
		ProductID: product.ID,
		Quantity:  quantity,
		UnitCost:  unitCost,
		Reason:    entity.ReasonImport,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

type resolvedProduct struct {
	*entity.Product
	justCreated bool
}

// resolveProduct encuentra o crea el producto de la fila: por SKU si viene,
// si no por nombre (insensible a mayúsculas) dentro de la categoría, y como
// último recurso crea uno nuevo con SKU sintetizado desde la secuencia.
func resolveProduct(
	productRepo repository.ProductRepository,
	rec dto.ImportRecord,
	name, categoryID string,
	supplierID *string,
	salePrice decimal.Decimal,
	summary *dto.ImportSummary,
) (*resolvedProduct, error) {
	sku := strings.TrimSpace(rec.SKU)
	if sku != "" {
		existing, err := productRepo.GetBySKU(sku)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &resolvedProduct{Product: existing}, nil
		}
		created, err := createProduct(productRepo, name, sku, categoryID, supplierID, salePrice, summary)
		if err != nil {
			return nil, err
		}
		return &resolvedProduct{Product: created, justCreated: true}, nil
	}

	existing, err := productRepo.FindByNameInCategory(name, categoryID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &resolvedProduct{Product: existing}, nil
	}

	// Sin SKU y sin coincidencia: sintetizar un SKU único desde la secuencia
	// de BD (monótona, segura bajo importaciones concurrentes).
	seq, err := productRepo.NextSKUSequence()
	if err != nil {
		return nil, err
	}
	created, err := createProduct(productRepo, name, fmt.Sprintf("IMP-%06d", seq), categoryID, supplierID, salePrice, summary)
	if err != nil {
		return nil, err
	}
	return &resolvedProduct{Product: created, justCreated: true}, nil
}

func createProduct(
	productRepo repository.ProductRepository,
	name, sku, categoryID string,
	supplierID *string,
	salePrice decimal.Decimal,
	summary *dto.ImportSummary,
) (*entity.Product, error) {
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		SKU:         sku,
		CategoryID:  categoryID,
		SupplierID:  supplierID,
		SalePrice:   salePrice,
		AverageCost: decimal.Zero,
		Unit:        entity.UnitPiece,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := productRepo.Create(product); err != nil {
		return nil, err
	}
	summary.ProductsCreated++
	return product, nil
}

// parseSalePrice devuelve el precio de venta de la fila si viene y parsea
// como moneda no negativa; un valor ilegible se ignora sin invalidar la fila.
func parseSalePrice(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
