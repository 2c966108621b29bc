package report

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/placacenter/pos-api/internal/application/dto"
	"github.com/placacenter/pos-api/internal/domain"
	"github.com/placacenter/pos-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// SalesUseCase agrega las ventas (salidas con motivo SALE) por período
// calendario. Solo lee el libro de movimientos y el catálogo; el ingreso usa
// el precio de venta ACTUAL de cada producto, no el histórico.
type SalesUseCase struct {
	movRepo repository.InventoryMovementRepository
	now     func() time.Time
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(movRepo repository.InventoryMovementRepository) *SalesUseCase {
	return &SalesUseCase{movRepo: movRepo, now: time.Now}
}

// Generate arma el reporte: por defecto los últimos 30 días hasta hoy,
// granularidad diaria. El rango es inclusivo en ambos extremos.
func (uc *SalesUseCase) Generate(ctx context.Context, in dto.SalesReportRequest) (*dto.SalesReportResponse, error) {
	granularity := in.Granularity
	if granularity == "" {
		granularity = GranularityDay
	}
	if !ValidGranularity(granularity) {
		return nil, domain.ErrInvalidInput
	}

	from, to, err := uc.resolveRange(in.DateFrom, in.DateTo)
	if err != nil {
		return nil, err
	}

	sales, err := uc.movRepo.ListSales(ctx, from, to)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*dto.SalesReportRow)
	resp := &dto.SalesReportResponse{
		Granularity:  granularity,
		DateFrom:     from.Format(dateLayout),
		DateTo:       to.Format(dateLayout),
		TotalCost:    decimal.Zero,
		TotalRevenue: decimal.Zero,
		Profit:       decimal.Zero,
	}
	for _, s := range sales {
		key, err := PeriodKey(granularity, s.CreatedAt)
		if err != nil {
			return nil, err
		}
		row, ok := buckets[key]
		if !ok {
			row = &dto.SalesReportRow{Period: key, TotalCost: decimal.Zero, TotalRevenue: decimal.Zero}
			buckets[key] = row
		}
		qty := decimal.NewFromInt(int64(s.Quantity))
		cost := s.UnitCost.Mul(qty)
		revenue := s.SalePrice.Mul(qty)

		row.Quantity += s.Quantity
		row.TotalCost = row.TotalCost.Add(cost)
		row.TotalRevenue = row.TotalRevenue.Add(revenue)

		resp.Quantity += s.Quantity
		resp.TotalCost = resp.TotalCost.Add(cost)
		resp.TotalRevenue = resp.TotalRevenue.Add(revenue)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	resp.Rows = make([]dto.SalesReportRow, 0, len(keys))
	for _, k := range keys {
		row := buckets[k]
		row.Profit = row.TotalRevenue.Sub(row.TotalCost)
		resp.Rows = append(resp.Rows, *row)
	}
	resp.Profit = resp.TotalRevenue.Sub(resp.TotalCost)
	return resp, nil
}

// resolveRange interpreta el rango inclusivo: sin "desde" se retrocede 30
// días desde "hasta"; sin "hasta" se usa hoy. El límite superior se extiende
// al final del día para que "hasta" sea inclusivo.
func (uc *SalesUseCase) resolveRange(fromStr, toStr string) (time.Time, time.Time, error) {
	var to time.Time
	if toStr == "" {
		now := uc.now()
		to = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	} else {
		var err error
		to, err = time.ParseInLocation(dateLayout, toStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
	}

	var from time.Time
	if fromStr == "" {
		from = to.AddDate(0, 0, -30)
	} else {
		var err error
		from, err = time.ParseInLocation(dateLayout, fromStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}

	toEnd := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return from, toEnd, nil
}
