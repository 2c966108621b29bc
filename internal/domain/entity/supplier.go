package entity

import "time"

// Supplier representa un proveedor. Al eliminarlo, los productos que lo
// referencian quedan sin proveedor (SET NULL, sin protección).
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT, opcional
	Phone     string // opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}
