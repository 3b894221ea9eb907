package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample(daily bool) Report {
	return Report{
		Name:  "pagos_2024-06-10",
		Daily: daily,
		Rows: []Row{
			{Fecha: "2024-06-10", DNI: "30111222", Nombre: "Ana", Apellido: "Gómez", Monto: 1500.5, TipoPago: "efectivo", ObraSocial: "OSDE"},
			{Fecha: "2024-06-10", DNI: "28999000", Nombre: "Luis", Apellido: "Pérez", Monto: 0, TipoPago: "obra_social", Observaciones: "con, coma"},
		},
		SubtotalEfectivo: 1500.5,
		Total:            1500.5,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample(true).Table()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Fecha,DNI,Nombre,Apellido,Monto,Tipo de Pago,Obra Social,Observaciones", lines[0])
	assert.Equal(t, "2024-06-10,30111222,Ana,Gómez,1500.5,efectivo,OSDE,", lines[1])
	assert.Equal(t, `2024-06-10,28999000,Luis,Pérez,0,obra_social,,"con, coma"`, lines[2])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, ",,,,TOTAL,1500.5,,", lines[7])
}

func TestWriteCSVMonthlyHasNoSubtotals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample(false).Table()))
	assert.NotContains(t, buf.String(), "Subtotal")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample(true).Table()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Pagos"}, f.GetSheetList())

	header, err := f.GetCellValue("Pagos", "F1")
	require.NoError(t, err)
	assert.Equal(t, "Tipo de Pago", header)

	surname, err := f.GetCellValue("Pagos", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Gómez", surname)

	label, err := f.GetCellValue("Pagos", "E5")
	require.NoError(t, err)
	assert.Equal(t, "Subtotal Efectivo", label)
}

func TestWriteSummaryRows(t *testing.T) {
	table := Table{
		Name:   "reporte",
		Header: []string{"DNI", "Monto"},
		Rows:   [][]any{{"30111222", 1500.0}, {"28999000", 0}},
		Summary: [][]any{
			{"RESUMEN"},
			{"Total Consultas", 2},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))
	assert.Equal(t, "DNI,Monto\n30111222,1500\n28999000,0\n\nRESUMEN\nTotal Consultas,2\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteXLSX(&buf, table))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Reporte"}, f.GetSheetList())
	total, err := f.GetCellValue("Reporte", "B6")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
}
