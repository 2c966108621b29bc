// Package pdf genera el recibo de venta imprimible del punto de venta.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/placacenter/pos-api/internal/application/dto"
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// ReceiptGenerator genera el PDF del recibo de una venta con Maroto v2.
type ReceiptGenerator struct {
	storeName string
}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator(storeName string) *ReceiptGenerator {
	return &ReceiptGenerator{storeName: storeName}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) Generate(receipt *dto.Receipt, soldAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de venta", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		row.New(10).Add(
			text.NewCol(8, g.storeName, props.Text{Size: 14, Style: fontstyle.Bold}),
			text.NewCol(4, soldAt.Format("2006-01-02 15:04"), props.Text{Align: align.Right, Color: colorGray}),
		),
		line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.4}),
	)

	m.AddRows(tableHeader())
	for _, l := range receipt.Lines {
		m.AddRows(detailRow(l))
	}

	m.AddRows(
		line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.4}),
		row.New(8).Add(
			col.New(8),
			text.NewCol(2, "TOTAL", props.Text{Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(2, "$ "+receipt.Total.StringFixed(2), props.Text{Style: fontstyle.Bold, Align: align.Right}),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar recibo PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func tableHeader() core.Row {
	style := props.Text{Style: fontstyle.Bold}
	return row.New(7).Add(
		text.NewCol(6, "Producto", style),
		text.NewCol(2, "Cant.", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "P. Unit", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Subtotal", props.Text{Style: fontstyle.Bold, Align: align.Right}),
	)
}

func detailRow(l dto.ReceiptLine) core.Row {
	return row.New(6).Add(
		text.NewCol(6, l.ProductName),
		text.NewCol(2, fmt.Sprintf("%d", l.Quantity), props.Text{Align: align.Right}),
		text.NewCol(2, l.UnitPrice.StringFixed(2), props.Text{Align: align.Right}),
		text.NewCol(2, l.Subtotal.StringFixed(2), props.Text{Align: align.Right}),
	)
}
