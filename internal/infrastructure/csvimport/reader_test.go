package csvimport_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placacenter/pos-api/internal/domain"
	"github.com/placacenter/pos-api/internal/infrastructure/csvimport"
)

func TestRead_EncabezadosCanonicosEnIngles(t *testing.T) {
	csv := "product,category,supplier,quantity,unit_cost,sku,sale_price\n" +
		"Martillo,Herramientas,Ferretería Sur,5,12.00,MAR-001,25.00\n"

	records, err := csvimport.Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Martillo", rec.Product)
	assert.Equal(t, "Herramientas", rec.Category)
	assert.Equal(t, "Ferretería Sur", rec.Supplier)
	assert.Equal(t, "5", rec.Quantity)
	assert.Equal(t, "12.00", rec.UnitCost)
	assert.Equal(t, "MAR-001", rec.SKU)
	assert.Equal(t, "25.00", rec.SalePrice)
}

func TestRead_AliasEnEspanol(t *testing.T) {
	csv := "Producto,Categoría,Proveedor,Cantidad,Costo_Unitario\n" +
		"Alicate,Herramientas,,3,8.50\n"

	records, err := csvimport.Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Alicate", records[0].Product)
	assert.Equal(t, "8.50", records[0].UnitCost)
	assert.Empty(t, records[0].SKU, "columnas opcionales ausentes quedan vacías")
}

func TestRead_ColumnasDesconocidasSeIgnoran(t *testing.T) {
	csv := "producto,categoria,proveedor,cantidad,costo_unitario,bodega,notas\n" +
		"Clavo,Herrajes,,100,0.15,Principal,urgente\n"

	records, err := csvimport.Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Clavo", records[0].Product)
}

func TestRead_EncabezadoObligatorioFaltante(t *testing.T) {
	// Sin costo_unitario: el archivo completo se rechaza.
	csv := "producto,categoria,proveedor,cantidad\nClavo,Herrajes,,100\n"

	_, err := csvimport.Read(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "unit_cost")
}

func TestRead_ArchivoVacio(t *testing.T) {
	_, err := csvimport.Read(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRead_SoloEncabezado(t *testing.T) {
	records, err := csvimport.Read(strings.NewReader("producto,categoria,proveedor,cantidad,costo_unitario\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRead_BOMDeExcel(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})
	buf.WriteString("producto,categoria,proveedor,cantidad,costo_unitario\nTuerca,Herrajes,,10,0.30\n")

	records, err := csvimport.Read(&buf)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Tuerca", records[0].Product)
}

func TestRead_FallbackWindows1252(t *testing.T) {
	// "Categoría" y "Ferretería" con í en Windows-1252 (0xED): no es UTF-8
	// válido, debe decodificarse por el fallback.
	raw := []byte("producto,categoria,proveedor,cantidad,costo_unitario\n" +
		"Pintura,Categor\xEDa X,Ferreter\xEDa Sur,2,15.00\n")

	records, err := csvimport.Read(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Categoría X", records[0].Category)
	assert.Equal(t, "Ferretería Sur", records[0].Supplier)
}

func TestRead_FilasConDistintoNumeroDeCampos(t *testing.T) {
	// Excel suele recortar campos vacíos al final; el lector no debe fallar.
	csv := "producto,categoria,proveedor,cantidad,costo_unitario,sku\n" +
		"Martillo,Herramientas,,5,12.00\n" +
		"Alicate,Herramientas,,3,8.50,ALI-001\n"

	records, err := csvimport.Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, records[0].SKU)
	assert.Equal(t, "ALI-001", records[1].SKU)
}
