package repository

import "github.com/placacenter/pos-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	// GetByName busca por nombre exacto (sensible a mayúsculas).
	GetByName(name string) (*entity.Category, error)
	List(search string, limit, offset int) ([]*entity.Category, error)
	Update(category *entity.Category) error
	// Delete falla con domain.ErrConflict si algún producto referencia la categoría.
	Delete(id string) error
}
