package repository

import (
	"context"
	"time"

	"github.com/placacenter/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SaleRecord es una salida con motivo de venta unida al precio de venta
// ACTUAL del producto (simplificación deliberada del reporte: el ingreso se
// calcula con el precio vigente, no el histórico).
type SaleRecord struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitCost    decimal.Decimal
	SalePrice   decimal.Decimal
	CreatedAt   time.Time
}

// InventoryMovementRepository define el puerto del libro de movimientos.
// Append-only: no existen Update ni Delete.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	// ListByProduct lista movimientos de un producto, más recientes primero.
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	// List lista movimientos globales, más recientes primero.
	List(from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	// ListSales devuelve las salidas con motivo SALE del rango inclusivo,
	// en orden cronológico ascendente, para el agregador de reportes.
	ListSales(ctx context.Context, from, to time.Time) ([]SaleRecord, error)
}
