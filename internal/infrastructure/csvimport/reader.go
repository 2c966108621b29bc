// Package csvimport decodifica archivos tabulares de importación masiva a
// registros crudos. La validación de valores es de la reconciliación
// (application/inventory); aquí solo se resuelven encabezados y charset.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/placacenter/pos-api/internal/application/dto"
	"github.com/placacenter/pos-api/internal/domain"
)

// Encabezados canónicos y sus alias en español (los exports de los
// proveedores suelen venir en español). La comparación ignora mayúsculas.
var headerAliases = map[string]string{
	"product":        "product",
	"producto":       "product",
	"category":       "category",
	"categoria":      "category",
	"categoría":      "category",
	"supplier":       "supplier",
	"proveedor":      "supplier",
	"quantity":       "quantity",
	"cantidad":       "quantity",
	"unit_cost":      "unit_cost",
	"costo_unitario": "unit_cost",
	"sku":            "sku",
	"sale_price":     "sale_price",
	"precio_venta":   "sale_price",
}

// Obligatorios: sin alguno de estos el archivo completo se rechaza antes de
// procesar fila alguna. sku y sale_price son opcionales; columnas
// desconocidas se ignoran.
var requiredHeaders = []string{"product", "category", "supplier", "quantity", "unit_cost"}

// Read decodifica el archivo a registros de importación. Acepta UTF-8 y cae
// a Windows-1252 si el contenido no es UTF-8 válido (exports de Excel).
func Read(r io.Reader) ([]dto.ImportRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	if !utf8.Valid(raw) {
		raw, err = io.ReadAll(transform.NewReader(bytes.NewReader(raw), charmap.Windows1252.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("decodificar windows-1252: %w", err)
		}
	}
	// BOM de Excel
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	columns, err := resolveHeader(header)
	if err != nil {
		return nil, err
	}

	var records []dto.ImportRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila: %w", err)
		}
		records = append(records, buildRecord(columns, row))
	}
	return records, nil
}

// resolveHeader mapea índice de columna -> campo canónico y verifica que
// todos los obligatorios estén presentes.
func resolveHeader(header []string) (map[int]string, error) {
	columns := make(map[int]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := headerAliases[name]; ok {
			columns[i] = canonical
			seen[canonical] = true
		}
		// columnas desconocidas: ignoradas
	}
	for _, req := range requiredHeaders {
		if !seen[req] {
			return nil, fmt.Errorf("%w: falta la columna obligatoria %q", domain.ErrInvalidInput, req)
		}
	}
	return columns, nil
}

func buildRecord(columns map[int]string, row []string) dto.ImportRecord {
	var rec dto.ImportRecord
	for i, value := range row {
		switch columns[i] {
		case "product":
			rec.Product = value
		case "category":
			rec.Category = value
		case "supplier":
			rec.Supplier = value
		case "quantity":
			rec.Quantity = value
		case "unit_cost":
			rec.UnitCost = value
		case "sku":
			rec.SKU = value
		case "sale_price":
			rec.SalePrice = value
		}
	}
	return rec
}
