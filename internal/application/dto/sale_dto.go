package dto

import "github.com/shopspring/decimal"

// CartLine una línea del carrito de sesión tal como la entrega la capa
// externa: producto, cantidad y el precio unitario cobrado (el precio fijado
// al agregar al carrito, independiente de la base de costo).
type CartLine struct {
	ProductID string          `json:"producto_id"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}

// CheckoutRequest body para POST /api/ventas/checkout.
type CheckoutRequest struct {
	Lines []CartLine `json:"items"`
}

// ReceiptLine línea del recibo de venta.
type ReceiptLine struct {
	ProductID   string          `json:"producto_id"`
	ProductName string          `json:"producto"`
	Quantity    int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Receipt recibo de una venta confirmada.
type Receipt struct {
	Lines []ReceiptLine   `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// StockShortage detalle de una línea que sobregira el stock: qué producto,
// cuánto se pidió y cuánto hay, para que el actor corrija sin adivinar.
type StockShortage struct {
	ProductID   string `json:"producto_id"`
	ProductName string `json:"producto"`
	Requested   int    `json:"solicitado"`
	Available   int    `json:"disponible"`
}
