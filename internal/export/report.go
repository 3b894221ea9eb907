// Package export renders listings as downloadable csv or xlsx files.
package export

// Row is one exported payment joined with its patient.
type Row struct {
	Fecha         string
	DNI           string
	Nombre        string
	Apellido      string
	Monto         float64
	TipoPago      string
	ObraSocial    string
	Observaciones string
}

// Report is the content of one payments export. Daily reports carry
// per-method subtotals after the rows.
type Report struct {
	Name  string
	Rows  []Row
	Daily bool

	SubtotalEfectivo      float64
	SubtotalTransferencia float64
	SubtotalObraSocial    float64

	// Total is cash plus transfer; insurance payments do not add revenue.
	Total float64
}

var Header = []string{
	"Fecha", "DNI", "Nombre", "Apellido", "Monto", "Tipo de Pago", "Obra Social", "Observaciones",
}

var columnWidths = []float64{12, 12, 20, 20, 12, 16, 20, 36}

func (r Row) values() []any {
	return []any{r.Fecha, r.DNI, r.Nombre, r.Apellido, r.Monto, r.TipoPago, r.ObraSocial, r.Observaciones}
}

// Table lays the report out as the "Pagos" sheet. Subtotal labels sit
// under the Monto column with the value to their right.
func (r Report) Table() Table {
	t := Table{
		Name:   r.Name,
		Sheet:  "Pagos",
		Header: Header,
		Widths: columnWidths,
		Rows:   make([][]any, 0, len(r.Rows)),
	}
	for _, row := range r.Rows {
		t.Rows = append(t.Rows, row.values())
	}

	if r.Daily {
		for _, s := range []struct {
			label string
			value float64
		}{
			{"Subtotal Efectivo", r.SubtotalEfectivo},
			{"Subtotal Transferencia", r.SubtotalTransferencia},
			{"Subtotal Obra Social", r.SubtotalObraSocial},
			{"TOTAL", r.Total},
		} {
			t.Summary = append(t.Summary, []any{"", "", "", "", s.label, s.value, "", ""})
		}
	}
	return t
}
