package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/placacenter/pos-api/internal/application/dto"
	"github.com/placacenter/pos-api/internal/domain"
	"github.com/placacenter/pos-api/internal/domain/entity"
	"github.com/placacenter/pos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock y costo promedio se
// manejan vía movimientos; aquí solo se tocan los campos de catálogo.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

// Create crea un producto. Stock y costo inician en cero.
func (uc *ProductUseCase) Create(in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(&in); err != nil {
		return nil, err
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(in.Name),
		SKU:              in.SKU,
		CategoryID:       in.CategoryID,
		SupplierID:       in.SupplierID,
		SalePrice:        in.SalePrice,
		AverageCost:      decimal.Zero,
		ReorderThreshold: in.ReorderThreshold,
		Unit:             in.Unit,
		Active:           active,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto con su proyección valuada.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Search lista productos con filtro de texto libre sobre nombre/SKU y filtro
// opcional por categoría, ordenados por nombre.
func (uc *ProductUseCase) Search(query, categoryID string, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.Search(query, categoryID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// ListLowStock devuelve los productos activos en o bajo su stock mínimo,
// ordenados por nombre (consumido por la alerta externa de stock bajo).
func (uc *ProductUseCase) ListLowStock() ([]*dto.ProductResponse, error) {
	products, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update corrige campos de catálogo (precio, categoría, proveedor, metadatos).
// Nunca stock ni costo promedio: esos pertenecen al motor de valuación.
func (uc *ProductUseCase) Update(id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(&in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != product.SKU {
		existing, _ := uc.repo.GetBySKU(in.SKU)
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
	}

	product.Name = strings.TrimSpace(in.Name)
	product.SKU = in.SKU
	product.CategoryID = in.CategoryID
	product.SupplierID = in.SupplierID
	product.SalePrice = in.SalePrice
	product.ReorderThreshold = in.ReorderThreshold
	product.Unit = in.Unit
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto del catálogo.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// validate normaliza y valida los campos de catálogo de la petición.
func (uc *ProductUseCase) validate(in *dto.ProductRequest) error {
	in.SKU = strings.TrimSpace(in.SKU)
	if strings.TrimSpace(in.Name) == "" || in.SKU == "" {
		return domain.ErrInvalidInput
	}
	if in.SalePrice.IsNegative() || in.ReorderThreshold < 0 {
		return domain.ErrInvalidInput
	}
	if in.Unit == "" {
		in.Unit = entity.UnitPiece
	}
	if !entity.ValidUnit(in.Unit) {
		return domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	if in.SupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(*in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		SKU:              p.SKU,
		CategoryID:       p.CategoryID,
		SupplierID:       p.SupplierID,
		SalePrice:        p.SalePrice,
		AverageCost:      p.AverageCost,
		Stock:            p.Stock,
		ReorderThreshold: p.ReorderThreshold,
		Unit:             p.Unit,
		Active:           p.Active,
		UpdatedAt:        p.UpdatedAt,
	}
}
