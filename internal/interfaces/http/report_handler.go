package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/placacenter/pos-api/internal/application/dto"
	"github.com/placacenter/pos-api/internal/application/report"
)

// ReportHandler reportes de venta agregados.
type ReportHandler struct {
	uc *report.SalesUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.SalesUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales godoc
// @Summary  Reporte de ventas por período
// @Description  Agrega las salidas con motivo SALE por día, semana, semana ISO,
// mes o año. Sin parámetros cubre los últimos 30 días con granularidad diaria.
// @Tags     reports
// @Security Bearer
// @Produce  json
// @Param    granularidad  query  string  false  "day | week | isoweek | month | year"
// @Param    desde         query  string  false  "YYYY-MM-DD inclusive"
// @Param    hasta         query  string  false  "YYYY-MM-DD inclusive"
// @Success  200  {object}  dto.SalesReportResponse
// @Failure  400  {object}  dto.ErrorResponse
// @Router   /api/reportes/ventas [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var in dto.SalesReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	resp, err := h.uc.Generate(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
