package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRequest body para crear/actualizar una categoría.
type CategoryRequest struct {
	Name string `json:"nombre"`
}

// CategoryResponse respuesta de categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// SupplierRequest body para crear/actualizar un proveedor.
type SupplierRequest struct {
	Name  string `json:"nombre"`
	TaxID string `json:"nit,omitempty"`
	Phone string `json:"telefono,omitempty"`
}

// SupplierResponse respuesta de proveedor.
type SupplierResponse struct {
	ID    string `json:"id"`
	Name  string `json:"nombre"`
	TaxID string `json:"nit,omitempty"`
	Phone string `json:"telefono,omitempty"`
}

// ProductRequest body para crear/actualizar un producto. Stock y costo
// promedio no se aceptan aquí: los gobiernan los movimientos.
type ProductRequest struct {
	Name             string          `json:"nombre"`
	SKU              string          `json:"sku"`
	CategoryID       string          `json:"categoria_id"`
	SupplierID       *string         `json:"proveedor_id,omitempty"`
	SalePrice        decimal.Decimal `json:"precio_venta"`
	ReorderThreshold int             `json:"stock_minimo"`
	Unit             string          `json:"unidad,omitempty"`
	Active           *bool           `json:"activo,omitempty"`
}

// ProductResponse respuesta de producto con la proyección valuada.
type ProductResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"nombre"`
	SKU              string          `json:"sku"`
	CategoryID       string          `json:"categoria_id"`
	SupplierID       *string         `json:"proveedor_id,omitempty"`
	SalePrice        decimal.Decimal `json:"precio_venta"`
	AverageCost      decimal.Decimal `json:"costo_promedio"`
	Stock            int             `json:"stock"`
	ReorderThreshold int             `json:"stock_minimo"`
	Unit             string          `json:"unidad"`
	Active           bool            `json:"activo"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
