package dto

import "github.com/shopspring/decimal"

// SalesReportRequest parámetros del reporte de ventas.
type SalesReportRequest struct {
	Granularity string `query:"granularidad"` // day | week | isoweek | month | year
	DateFrom    string `query:"desde"`        // YYYY-MM-DD inclusive, opcional
	DateTo      string `query:"hasta"`        // YYYY-MM-DD inclusive, opcional
}

// SalesReportRow un bucket del reporte, identificado por la clave de período.
type SalesReportRow struct {
	Period       string          `json:"periodo"`
	Quantity     int             `json:"cantidad"`
	TotalCost    decimal.Decimal `json:"total_costo"`
	TotalRevenue decimal.Decimal `json:"total_venta"`
	Profit       decimal.Decimal `json:"utilidad"` // total_venta - total_costo
}

// SalesReportResponse reporte completo: filas en orden ascendente de período
// más los totales generales.
type SalesReportResponse struct {
	Granularity  string           `json:"granularidad"`
	DateFrom     string           `json:"desde"`
	DateTo       string           `json:"hasta"`
	Rows         []SalesReportRow `json:"filas"`
	Quantity     int              `json:"cantidad_total"`
	TotalCost    decimal.Decimal  `json:"total_costo"`
	TotalRevenue decimal.Decimal  `json:"total_venta"`
	Profit       decimal.Decimal  `json:"utilidad"`
}
