package domain

import (
	"fmt"
	"strings"
)

// StockShortage una línea de carrito que sobregira el stock disponible.
type StockShortage struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

// StockShortageError agrupa todas las líneas ofensoras de un checkout: el
// actor debe poder corregir el carrito sin reintentar a ciegas.
type StockShortageError struct {
	Shortages []StockShortage
}

func (e *StockShortageError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s: solicitado %d, disponible %d", s.ProductName, s.Requested, s.Available))
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *StockShortageError) Unwrap() error { return ErrInsufficientStock }
