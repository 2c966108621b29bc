package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntryRequest body para POST /api/inventario/entradas.
type StockEntryRequest struct {
	ProductID string          `json:"producto_id"`
	Quantity  int             `json:"cantidad"`
	UnitCost  decimal.Decimal `json:"costo_unitario"`
	Reason    string          `json:"motivo,omitempty"`
}

// MovementResponse un registro del libro de movimientos.
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"producto_id"`
	Kind      string          `json:"tipo"`
	Quantity  int             `json:"cantidad"`
	UnitCost  decimal.Decimal `json:"costo_unitario"`
	Reason    string          `json:"motivo,omitempty"`
	CreatedAt time.Time       `json:"fecha"`
}

// ImportRecord es un registro tabular ya decodificado para la importación
// masiva. Los valores llegan como texto crudo; la validación por fila es
// parte de la reconciliación, no del parseo.
type ImportRecord struct {
	Product   string
	Category  string
	Supplier  string
	Quantity  string
	UnitCost  string
	SKU       string
	SalePrice string
}

// ImportSummary resumen de una importación masiva.
type ImportSummary struct {
	RowsApplied       int `json:"filas_aplicadas"`
	RowsSkipped       int `json:"filas_omitidas"`
	CategoriesCreated int `json:"categorias_creadas"`
	SuppliersCreated  int `json:"proveedores_creados"`
	ProductsCreated   int `json:"productos_creados"`
}
