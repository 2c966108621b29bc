package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/placacenter/pos-api/internal/application/dto"
	appinv "github.com/placacenter/pos-api/internal/application/inventory"
	"github.com/placacenter/pos-api/internal/domain/entity"
	"github.com/placacenter/pos-api/internal/domain/repository"
	"github.com/placacenter/pos-api/internal/infrastructure/csvimport"
)

// InventoryHandler maneja entradas de stock, importación masiva y consulta
// del libro de movimientos.
type InventoryHandler struct {
	entryUC  *appinv.EntryUseCase
	importUC *appinv.ImportUseCase
	movRepo  repository.InventoryMovementRepository
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(entryUC *appinv.EntryUseCase, importUC *appinv.ImportUseCase, movRepo repository.InventoryMovementRepository) *InventoryHandler {
	return &InventoryHandler{entryUC: entryUC, importUC: importUC, movRepo: movRepo}
}

// RegisterEntry godoc
// @Summary  Registrar entrada de stock
// @Tags     inventory
// @Security Bearer
// @Accept   json
// @Produce  json
// @Param    body  body  dto.StockEntryRequest  true  "producto_id, cantidad, costo_unitario, motivo"
// @Success  200   {object}  dto.ProductResponse
// @Failure  400   {object}  dto.ErrorResponse
// @Failure  404   {object}  dto.ErrorResponse
// @Router   /api/inventario/entradas [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.StockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.entryUC.RegisterEntry(c.Context(), appinv.EntryInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Reason:    in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"producto_id":    product.ID,
		"stock":          product.Stock,
		"costo_promedio": product.AverageCost,
	})
}

// Import godoc
// @Summary  Importación masiva de inventario (CSV)
// @Tags     inventory
// @Security Bearer
// @Accept   multipart/form-data
// @Produce  json
// @Param    file  formData  file  true  "CSV con columnas producto, categoria, proveedor, cantidad, costo_unitario [, sku, precio_venta]"
// @Success  200   {object}  dto.ImportSummary
// @Failure  400   {object}  dto.ErrorResponse
// @Router   /api/inventario/importar [post]
func (h *InventoryHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo 'file' requerido"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	records, err := csvimport.Read(f)
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.importUC.Import(c.Context(), records)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// ListMovements lista el libro de movimientos, más recientes primero.
// ?producto= filtra por producto; ?desde= y ?hasta= acotan el rango.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()

	from, err := parseDateQuery(c.Query("desde"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'desde' inválida (YYYY-MM-DD)"})
	}
	to, err := parseDateQuery(c.Query("hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'hasta' inválida (YYYY-MM-DD)"})
	}
	if to != nil {
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}

	var movements []*entity.InventoryMovement
	if productID := c.Query("producto"); productID != "" {
		movements, err = h.movRepo.ListByProduct(productID, from, to, page.Limit, page.Offset)
	} else {
		movements, err = h.movRepo.List(from, to, page.Limit, page.Offset)
	}
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Kind:      m.Kind,
			Quantity:  m.Quantity,
			UnitCost:  m.UnitCost,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt,
		})
	}
	return c.JSON(out)
}

func parseDateQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
