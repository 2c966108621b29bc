package entity

import "time"

// Roles de usuario. El rol determina qué operaciones mutantes de inventario
// puede ejecutar el actor (chequeo de capacidad en el middleware HTTP).
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User actor autenticado del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
}
