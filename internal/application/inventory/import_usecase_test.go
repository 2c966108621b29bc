package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placacenter/pos-api/internal/application/dto"
	appinv "github.com/placacenter/pos-api/internal/application/inventory"
	"github.com/placacenter/pos-api/internal/domain"
	"github.com/placacenter/pos-api/internal/domain/entity"
	"github.com/placacenter/pos-api/internal/testutil"
)

func newImportFixture(t *testing.T) (*appinv.ImportUseCase, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	return appinv.NewImportUseCase(&testutil.TxRunner{Store: store}), store
}

func TestImport_CreaCatalogoCompleto(t *testing.T) {
	uc, store := newImportFixture(t)

	summary, err := uc.Import(context.Background(), []dto.ImportRecord{
		{Product: "Martillo", Category: "Herramientas", Supplier: "Ferretería Sur", Quantity: "5", UnitCost: "12.00", SalePrice: "25.00"},
		{Product: "Alicate", Category: "Herramientas", Supplier: "Ferretería Sur", Quantity: "3", UnitCost: "8.50"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.RowsApplied)
	assert.Equal(t, 0, summary.RowsSkipped)
	assert.Equal(t, 1, summary.CategoriesCreated, "la categoría repetida se crea una sola vez")
	assert.Equal(t, 1, summary.SuppliersCreated)
	assert.Equal(t, 2, summary.ProductsCreated)

	// Cada fila aplicada deja su movimiento ENTRADA con motivo IMPORT.
	movs := store.AllMovements()
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementEntrada, m.Kind)
		assert.Equal(t, entity.ReasonImport, m.Reason)
	}
}

func TestImport_FilasMalformadasSeOmitenSinAbortar(t *testing.T) {
	uc, store := newImportFixture(t)

	summary, err := uc.Import(context.Background(), []dto.ImportRecord{
		{Product: "", Category: "A", Supplier: "", Quantity: "5", UnitCost: "1.00"},          // sin nombre
		{Product: "Clavo", Category: "A", Supplier: "", Quantity: "cinco", UnitCost: "1.00"}, // cantidad no numérica
		{Product: "Clavo", Category: "A", Supplier: "", Quantity: "-3", UnitCost: "1.00"},    // cantidad negativa
		{Product: "Clavo", Category: "A", Supplier: "", Quantity: "0", UnitCost: "1.00"},     // cantidad cero
		{Product: "Clavo", Category: "A", Supplier: "", Quantity: "2", UnitCost: "-1.00"},    // costo negativo
		{Product: "Clavo", Category: "A", Supplier: "", Quantity: "10", UnitCost: "0.15"},    // válida
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.RowsApplied)
	assert.Equal(t, 5, summary.RowsSkipped)
	assert.Equal(t, 1, summary.ProductsCreated)
	assert.Equal(t, 1, store.MovementCount())
}

func TestImport_SKUSintetizadoDesdeSecuencia(t *testing.T) {
	uc, store := newImportFixture(t)

	summary, err := uc.Import(context.Background(), []dto.ImportRecord{
		{Product: "Bisagra", Category: "Herrajes", Supplier: "", Quantity: "4", UnitCost: "2.00"},
		{Product: "Cerrojo", Category: "Herrajes", Supplier: "", Quantity: "2", UnitCost: "6.00"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ProductsCreated)

	products, err := store.Products().Search("", "", 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 2)
	skus := []string{products[0].SKU, products[1].SKU}
	assert.ElementsMatch(t, []string{"IMP-000001", "IMP-000002"}, skus)
}

func TestImport_PorSKUExistenteAcumulaYActualizaCatalogo(t *testing.T) {
	uc, store := newImportFixture(t)
	store.SeedCategory(&entity.Category{ID: "cat-1", Name: "Pinturas"})
	store.SeedProduct(&entity.Product{
		ID:          "p1",
		Name:        "Pintura blanca",
		SKU:         "PIN-001",
		CategoryID:  "cat-1",
		SalePrice:   dec("30.00"),
		Stock:       10,
		AverageCost: dec("5.00"),
		Unit:        entity.UnitPiece,
		Active:      true,
	})

	summary, err := uc.Import(context.Background(), []dto.ImportRecord{
		{Product: "Pintura blanca", Category: "Pinturas", Supplier: "", Quantity: "10", UnitCost: "7.00", SKU: "PIN-001", SalePrice: "32.00"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RowsApplied)
	assert.Equal(t, 0, summary.ProductsCreated, "la fila debe resolver al producto existente por SKU")

	stored := store.ProductByID("p1")
	assert.Equal(t, 20, stored.Stock)
	assert.True(t, stored.AverageCost.Equal(dec("6.00")), "promedio ponderado: %s", stored.AverageCost)
	assert.True(t, stored.SalePrice.Equal(dec("32.00")), "last-row-wins en precio de venta")
}

func TestImport_ReutilizaPorNombreDentroDeCategoria(t *testing.T) {
	uc, store := newImportFixture(t)
	store.SeedCategory(&entity.Category{ID: "cat-1", Name: "Adhesivos"})
	store.SeedProduct(&entity.Product{
		ID:          "p1",
		Name:        "Silicona Gris",
		SKU:         "SIL-001",
		CategoryID:  "cat-1",
		Stock:       2,
		AverageCost: dec("3.00"),
		Unit:        entity.UnitPiece,
		Active:      true,
	})

	// Sin SKU: debe coincidir por nombre (insensible a mayúsculas) dentro de
	// la misma categoría, no crear un duplicado.
	summary, err := uc.Import(context.Background(), []dto.ImportRecord{
		{Product: "silicona gris", Category: "Adhesivos", Supplier: "", Quantity: "2", UnitCost: "3.00"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.ProductsCreated)
	assert.Equal(t, 4, store.ProductByID("p1").Stock)
}

func TestImport_CategoriaVaciaUsaFallback(t *testing.T) {
	uc, store := newImportFixture(t)

	_, err := uc.Import(context.Background(), []dto.ImportRecord{
		{Product: "Cinta métrica", Category: "", Supplier: "", Quantity: "1", UnitCost: "4.00"},
	})
	require.NoError(t, err)

	general, err := store.Categories().GetByName("General")
	require.NoError(t, err)
	require.NotNil(t, general, "debe crearse la categoría de respaldo General")
}

func TestImport_LoteVacio(t *testing.T) {
	uc, _ := newImportFixture(t)
	_, err := uc.Import(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
