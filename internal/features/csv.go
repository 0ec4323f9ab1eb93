package features

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes the matrix with a header row: the trip identifier column
// followed by every feature column.
func WriteCSV(w io.Writer, m *Matrix) error {
	cw := csv.NewWriter(w)
	header := append([]string{IDColumn}, m.Columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(header))
	for _, r := range m.Rows {
		record[0] = strconv.FormatInt(r.TripID, 10)
		for i, v := range r.Values {
			record[i+1] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row for trip %d: %w", r.TripID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
