package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/placacenter/pos-api/internal/application/dto"
	"github.com/placacenter/pos-api/internal/application/sale"
	"github.com/placacenter/pos-api/internal/infrastructure/pdf"
)

// SaleHandler maneja el checkout del carrito.
type SaleHandler struct {
	uc       *sale.CheckoutUseCase
	receipts *pdf.ReceiptGenerator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sale.CheckoutUseCase, receipts *pdf.ReceiptGenerator) *SaleHandler {
	return &SaleHandler{uc: uc, receipts: receipts}
}

// Checkout godoc
// @Summary  Confirmar venta del carrito
// @Description  Valida el carrito completo y, si alcanza el stock, descuenta y
// registra las salidas en una sola transacción. Con ?formato=pdf devuelve el
// recibo como PDF en lugar de JSON.
// @Tags     sales
// @Security Bearer
// @Accept   json
// @Produce  json
// @Param    body  body  dto.CheckoutRequest  true  "líneas del carrito"
// @Success  200   {object}  dto.Receipt
// @Failure  409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK con el detalle por producto"
// @Router   /api/ventas/checkout [post]
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	receipt, err := h.uc.Checkout(c.Context(), in.Lines)
	if err != nil {
		return respondError(c, err)
	}

	if c.Query("formato") == "pdf" {
		doc, err := h.receipts.Generate(receipt, time.Now())
		if err != nil {
			return respondError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="recibo.pdf"`)
		return c.Send(doc)
	}
	return c.JSON(receipt)
}
