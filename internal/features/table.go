package features

import (
	"fmt"

	"github.com/banshee-data/trip.features/internal/telematics"
)

// IDColumn is the name of the trip identifier column in assembled output.
const IDColumn = telematics.FieldTripID

// Table holds one feature family: a row per trip that the family produced.
type Table struct {
	Name    string
	Columns []string
	rows    map[int64][]float64
	ids     []int64
}

// NewTable returns an empty table with the given columns.
func NewTable(name string, columns []string) *Table {
	return &Table{
		Name:    name,
		Columns: append([]string(nil), columns...),
		rows:    make(map[int64][]float64),
	}
}

// Set stores the row for a trip, replacing any previous row.
func (t *Table) Set(tripID int64, values []float64) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("%s row for trip %d has %d values, want %d", t.Name, tripID, len(values), len(t.Columns))
	}
	if _, ok := t.rows[tripID]; !ok {
		t.ids = append(t.ids, tripID)
	}
	t.rows[tripID] = values
	return nil
}

// Row returns the stored row for a trip.
func (t *Table) Row(tripID int64) ([]float64, bool) {
	r, ok := t.rows[tripID]
	return r, ok
}

// Lookup returns the row for a trip, or a zero row if the trip is absent.
func (t *Table) Lookup(tripID int64) []float64 {
	if r, ok := t.rows[tripID]; ok {
		return r
	}
	return make([]float64, len(t.Columns))
}

// Len returns the number of stored rows.
func (t *Table) Len() int { return len(t.ids) }

// IDs returns the trip identifiers in insertion order.
func (t *Table) IDs() []int64 { return append([]int64(nil), t.ids...) }

// Row of an assembled feature matrix.
type Row struct {
	TripID int64
	Values []float64
}

// Matrix is the assembled output: one row per input trip, every feature
// column present.
type Matrix struct {
	Columns []string
	Rows    []Row
}

// ColumnIndex returns the index of a feature column.
func (m *Matrix) ColumnIndex(name string) (int, bool) {
	for i, c := range m.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Get returns the value of a feature for a trip.
func (m *Matrix) Get(tripID int64, column string) (float64, bool) {
	ci, ok := m.ColumnIndex(column)
	if !ok {
		return 0, false
	}
	for _, r := range m.Rows {
		if r.TripID == tripID {
			return r.Values[ci], true
		}
	}
	return 0, false
}

// Sum returns the total of a column across every row.
func (m *Matrix) Sum(column string) float64 {
	ci, ok := m.ColumnIndex(column)
	if !ok {
		return 0
	}
	var total float64
	for _, r := range m.Rows {
		total += r.Values[ci]
	}
	return total
}
