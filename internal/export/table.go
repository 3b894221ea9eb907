package export

// Table is one sheet: a header row, data rows and, after a blank line,
// optional summary rows.
type Table struct {
	Name    string
	Sheet   string
	Header  []string
	Widths  []float64
	Rows    [][]any
	Summary [][]any
}
