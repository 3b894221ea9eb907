package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	}
	return fmt.Sprint(v)
}

func cells(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = formatCell(v)
	}
	return out
}

// WriteCSV writes t as comma-separated values. Rows may be shorter than
// the header.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(cells(row)); err != nil {
			return err
		}
	}

	if len(t.Summary) > 0 {
		if err := cw.Write([]string{}); err != nil {
			return err
		}
		for _, row := range t.Summary {
			if err := cw.Write(cells(row)); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
