package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida válidas para un producto.
const (
	UnitPiece    = "und" // unidad
	UnitMeter    = "mt"
	UnitLiter    = "lt"
	UnitKilogram = "kg"
)

// ValidUnit indica si la unidad de medida es una de las soportadas.
func ValidUnit(u string) bool {
	switch u {
	case UnitPiece, UnitMeter, UnitLiter, UnitKilogram:
		return true
	}
	return false
}

// Product representa un producto del catálogo. SKU único; (nombre, sku) único.
// Stock y AverageCost son una proyección derivada del libro de movimientos:
// los mutan únicamente los flujos de entrada/venta a través del motor de
// valuación, nunca la edición de catálogo.
type Product struct {
	ID               string
	Name             string
	SKU              string
	CategoryID       string
	SupplierID       *string // opcional
	SalePrice        decimal.Decimal
	AverageCost      decimal.Decimal // costo promedio ponderado, 2 decimales
	Stock            int
	ReorderThreshold int // stock mínimo para alertas de reposición
	Unit             string
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
