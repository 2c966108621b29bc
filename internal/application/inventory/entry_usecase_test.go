package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/placacenter/pos-api/internal/application/inventory"
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

func newEntryFixture(t *testing.T) (*appinv.EntryUseCase, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	uc := appinv.NewEntryUseCase(&testutil.TxRunner{Store: store}, store.Products())
	return uc, store
}

func seedProduct(store *testutil.Store, id string, stock int, avgCost string) {
	store.SeedProduct(&entity.Product{
		ID:          id,
		Name:        "Tornillo 1/4",
		SKU:         "TOR-014",
		CategoryID:  "cat-1",
		SalePrice:   dec("10.00"),
		AverageCost: dec(avgCost),
		Stock:       stock,
		Unit:        entity.UnitPiece,
		Active:      true,
	})
}

func TestRegisterEntry_ActualizaStockYCostoPromedio(t *testing.T) {
	uc, store := newEntryFixture(t)
	seedProduct(store, "p1", 10, "5.00")

	updated, err := uc.RegisterEntry(context.Background(), appinv.EntryInput{
		ProductID: "p1",
		Quantity:  10,
		UnitCost:  dec("7.00"),
		Reason:    "compra proveedor",
	})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Stock)
	assert.True(t, updated.AverageCost.Equal(dec("6.00")), "costo promedio: %s", updated.AverageCost)

	// La proyección persistida coincide con lo devuelto.
	stored := store.ProductByID("p1")
	assert.Equal(t, 20, stored.Stock)
	assert.True(t, stored.AverageCost.Equal(dec("6.00")))

	// Queda exactamente un movimiento ENTRADA con el costo de adquisición.
	movs := store.AllMovements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementEntrada, movs[0].Kind)
	assert.Equal(t, "p1", movs[0].ProductID)
	assert.Equal(t, 10, movs[0].Quantity)
	assert.True(t, movs[0].UnitCost.Equal(dec("7.00")))
	assert.Equal(t, "compra proveedor", movs[0].Reason)
}

func TestRegisterEntry_ProductoInexistente(t *testing.T) {
	uc, store := newEntryFixture(t)

	_, err := uc.RegisterEntry(context.Background(), appinv.EntryInput{
		ProductID: "no-existe",
		Quantity:  1,
		UnitCost:  dec("1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, store.MovementCount(), "no debe registrarse movimiento alguno")
}

func TestRegisterEntry_EntradaInvalida(t *testing.T) {
	uc, store := newEntryFixture(t)
	seedProduct(store, "p1", 5, "2.00")

	cases := []struct {
		name  string
		input appinv.EntryInput
	}{
		{"cantidad cero", appinv.EntryInput{ProductID: "p1", Quantity: 0, UnitCost: dec("1.00")}},
		{"cantidad negativa", appinv.EntryInput{ProductID: "p1", Quantity: -3, UnitCost: dec("1.00")}},
		{"costo negativo", appinv.EntryInput{ProductID: "p1", Quantity: 1, UnitCost: dec("-0.01")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterEntry(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidMovement)
		})
	}

	assert.Zero(t, store.MovementCount())
	stored := store.ProductByID("p1")
	assert.Equal(t, 5, stored.Stock, "el stock no debe cambiar ante entradas inválidas")
}

func TestRegisterEntry_CostoCeroEsValido(t *testing.T) {
	// Mercancía recibida sin costo (bonificación): entrada válida que diluye
	// el promedio.
	uc, store := newEntryFixture(t)
	seedProduct(store, "p1", 10, "4.00")

	updated, err := uc.RegisterEntry(context.Background(), appinv.EntryInput{
		ProductID: "p1",
		Quantity:  10,
		UnitCost:  decimal.Zero,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Stock)
	assert.True(t, updated.AverageCost.Equal(dec("2.00")), "promedio diluido: %s", updated.AverageCost)
}
