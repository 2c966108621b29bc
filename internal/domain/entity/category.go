package entity

import "time"

// Category representa una categoría de productos. Nombre único y no vacío.
// No puede eliminarse mientras algún producto la referencie (protect-on-delete).
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
