package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidMovement   = errors.New("movimiento de inventario inválido")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual; reintentar la operación")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUserNotFound      = errors.New("usuario no encontrado")
)
