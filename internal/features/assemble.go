package features

// Assemble left-joins feature tables onto tripIDs, the distinct trip
// identifiers of the original input in output order. Trips absent from a
// table get zeros for that table's columns; a NaN that reached a table is
// also written as 0.
func Assemble(tripIDs []int64, tables ...*Table) *Matrix {
	var cols []string
	for _, t := range tables {
		cols = append(cols, t.Columns...)
	}

	m := &Matrix{Columns: cols, Rows: make([]Row, 0, len(tripIDs))}
	seen := make(map[int64]struct{}, len(tripIDs))
	for _, id := range tripIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		values := make([]float64, 0, len(cols))
		for _, t := range tables {
			for _, v := range t.Lookup(id) {
				values = append(values, finite(v))
			}
		}
		m.Rows = append(m.Rows, Row{TripID: id, Values: values})
	}
	return m
}
