package sale_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placacenter/pos-api/internal/application/dto"
	"github.com/placacenter/pos-api/internal/application/sale"
	"github.com/placacenter/pos-api/internal/domain"
	"github.com/placacenter/pos-api/internal/domain/entity"
	"github.com/placacenter/pos-api/internal/testutil"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newCheckoutFixture(t *testing.T) (*sale.CheckoutUseCase, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	uc := sale.NewCheckoutUseCase(&testutil.TxRunner{Store: store}, store.Products())
	return uc, store
}

func seedProduct(store *testutil.Store, id, name string, stock int, avgCost string) {
	store.SeedProduct(&entity.Product{
		ID:          id,
		Name:        name,
		SKU:         "SKU-" + id,
		CategoryID:  "cat-1",
		SalePrice:   dec("10.00"),
		AverageCost: dec(avgCost),
		Stock:       stock,
		Unit:        entity.UnitPiece,
		Active:      true,
	})
}

func TestCheckout_DescuentaStockYRegistraSalidas(t *testing.T) {
	uc, store := newCheckoutFixture(t)
	seedProduct(store, "p1", "Taladro", 10, "50.00")
	seedProduct(store, "p2", "Broca 8mm", 30, "1.20")

	receipt, err := uc.Checkout(context.Background(), []dto.CartLine{
		{ProductID: "p1", Quantity: 1, UnitPrice: dec("89.90")},
		{ProductID: "p2", Quantity: 4, UnitPrice: dec("2.50")},
	})
	require.NoError(t, err)

	require.Len(t, receipt.Lines, 2)
	assert.True(t, receipt.Lines[0].Subtotal.Equal(dec("89.90")))
	assert.True(t, receipt.Lines[1].Subtotal.Equal(dec("10.00")))
	assert.True(t, receipt.Total.Equal(dec("99.90")), "total: %s", receipt.Total)

	assert.Equal(t, 9, store.ProductByID("p1").Stock)
	assert.Equal(t, 26, store.ProductByID("p2").Stock)

	// Una SALIDA por línea, con motivo SALE y costo congelado al promedio del
	// producto en el momento de la venta.
	movs := store.AllMovements()
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementSalida, m.Kind)
		assert.Equal(t, entity.ReasonSale, m.Reason)
	}
	assert.True(t, movs[0].UnitCost.Equal(dec("50.00")))
	assert.True(t, movs[1].UnitCost.Equal(dec("1.20")))
}

func TestCheckout_LaVentaNoAlteraElCostoPromedio(t *testing.T) {
	uc, store := newCheckoutFixture(t)
	seedProduct(store, "p1", "Taladro", 10, "50.00")

	_, err := uc.Checkout(context.Background(), []dto.CartLine{
		{ProductID: "p1", Quantity: 5, UnitPrice: dec("89.90")},
	})
	require.NoError(t, err)
	assert.True(t, store.ProductByID("p1").AverageCost.Equal(dec("50.00")))
}

func TestCheckout_ReportaTodosLosFaltantes(t *testing.T) {
	uc, store := newCheckoutFixture(t)
	seedProduct(store, "p1", "Taladro", 2, "50.00")
	seedProduct(store, "p2", "Broca 8mm", 1, "1.20")
	seedProduct(store, "p3", "Guantes", 50, "3.00")

	_, err := uc.Checkout(context.Background(), []dto.CartLine{
		{ProductID: "p1", Quantity: 5, UnitPrice: dec("89.90")},
		{ProductID: "p2", Quantity: 3, UnitPrice: dec("2.50")},
		{ProductID: "p3", Quantity: 2, UnitPrice: dec("5.00")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var shortage *domain.StockShortageError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Shortages, 2, "debe reportar TODAS las líneas ofensoras")
	assert.Equal(t, "p1", shortage.Shortages[0].ProductID)
	assert.Equal(t, 5, shortage.Shortages[0].Requested)
	assert.Equal(t, 2, shortage.Shortages[0].Available)
	assert.Equal(t, "p2", shortage.Shortages[1].ProductID)

	// Nada se descuenta ni se registra: todo o nada.
	assert.Equal(t, 2, store.ProductByID("p1").Stock)
	assert.Equal(t, 1, store.ProductByID("p2").Stock)
	assert.Equal(t, 50, store.ProductByID("p3").Stock)
	assert.Zero(t, store.MovementCount())
}

func TestCheckout_LineasDelMismoProductoSeValidanJuntas(t *testing.T) {
	uc, store := newCheckoutFixture(t)
	seedProduct(store, "p1", "Taladro", 10, "50.00")

	// 6 + 5 = 11 > 10: cada línea cabe por separado, juntas no.
	_, err := uc.Checkout(context.Background(), []dto.CartLine{
		{ProductID: "p1", Quantity: 6, UnitPrice: dec("89.90")},
		{ProductID: "p1", Quantity: 5, UnitPrice: dec("89.90")},
	})
	var shortage *domain.StockShortageError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Shortages, 1)
	assert.Equal(t, 11, shortage.Shortages[0].Requested)
	assert.Equal(t, 10, shortage.Shortages[0].Available)
	assert.Equal(t, 10, store.ProductByID("p1").Stock)
}

func TestCheckout_CarritoInvalido(t *testing.T) {
	uc, store := newCheckoutFixture(t)
	seedProduct(store, "p1", "Taladro", 10, "50.00")

	_, err := uc.Checkout(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "carrito vacío")

	_, err = uc.Checkout(context.Background(), []dto.CartLine{{ProductID: "p1", Quantity: 0, UnitPrice: dec("1.00")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.Checkout(context.Background(), []dto.CartLine{{ProductID: "p1", Quantity: 1, UnitPrice: dec("-1.00")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")
}

func TestCheckout_ProductoInexistente(t *testing.T) {
	uc, _ := newCheckoutFixture(t)
	_, err := uc.Checkout(context.Background(), []dto.CartLine{
		{ProductID: "fantasma", Quantity: 1, UnitPrice: dec("1.00")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Bajo checkouts concurrentes sobre el mismo producto, el stock jamás queda
// negativo: los perdedores de la carrera reciben el faltante.
func TestCheckout_ConcurrenteNuncaDejaStockNegativo(t *testing.T) {
	uc, store := newCheckoutFixture(t)
	seedProduct(store, "p1", "Taladro", 10, "50.00")

	const workers = 8
	const perCart = 3

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Checkout(context.Background(), []dto.CartLine{
				{ProductID: "p1", Quantity: perCart, UnitPrice: dec("89.90")},
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.True(t, errors.Is(err, domain.ErrInsufficientStock),
			"un checkout perdedor solo puede fallar por stock: %v", err)
	}

	final := store.ProductByID("p1").Stock
	assert.GreaterOrEqual(t, final, 0, "el stock jamás queda negativo")
	assert.Equal(t, 10-succeeded*perCart, final)
	assert.Equal(t, succeeded, store.MovementCount(), "una SALIDA por checkout exitoso")
}
