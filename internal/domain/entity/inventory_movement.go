package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementEntrada = "ENTRADA" // entrada de mercancía
	MovementSalida  = "SALIDA"  // salida (venta)
)

// Motivos reservados. ReasonSale marca las salidas que cuentan para el
// reporte de ventas; ReasonImport marca las entradas de importación masiva.
const (
	ReasonSale   = "SALE"
	ReasonImport = "IMPORT"
)

// InventoryMovement es un registro del libro de movimientos (append-only):
// nunca se actualiza ni se elimina. Para ENTRADA, UnitCost es el costo de
// adquisición; para SALIDA es el costo promedio del producto al momento de
// la venta (la base de costo queda congelada en el registro).
type InventoryMovement struct {
	ID        string
	ProductID string
	Kind      string // ENTRADA | SALIDA
	Quantity  int    // siempre positivo
	UnitCost  decimal.Decimal
	Reason    string // libre; SALE e IMPORT reservados
	CreatedAt time.Time
}
