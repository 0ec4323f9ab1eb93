package telematics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadCSV reads a raw telematics table with a header row. The header is
// validated before any record is parsed, so a schema mismatch returns
// a *SchemaError and no samples.
func ReadCSV(r io.Reader) (Input, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return Input{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	fields := make([]string, len(header))
	for i, h := range header {
		fields[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	if err := ValidateFields(fields); err != nil {
		return Input{}, err
	}

	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f] = i
	}

	var samples []Sample
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return Input{}, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		s, err := parseRecord(record, idx)
		if err == nil {
			err = CheckOrdering(s)
		}
		if err != nil {
			return Input{}, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, s)
	}

	return Input{Fields: fields, Samples: samples}, nil
}

func parseRecord(record []string, idx map[string]int) (Sample, error) {
	var s Sample
	var err error

	if s.TripID, err = parseTripID(record[idx[FieldTripID]]); err != nil {
		return s, err
	}

	targets := []struct {
		field string
		dst   *float64
	}{
		{FieldAccuracy, &s.Accuracy},
		{FieldBearing, &s.Bearing},
		{FieldSecond, &s.Second},
		{FieldSpeed, &s.Speed},
		{FieldAccelX, &s.AccelX},
		{FieldAccelY, &s.AccelY},
		{FieldAccelZ, &s.AccelZ},
		{FieldGyroX, &s.GyroX},
		{FieldGyroY, &s.GyroY},
		{FieldGyroZ, &s.GyroZ},
	}
	for _, tgt := range targets {
		v, err := strconv.ParseFloat(strings.TrimSpace(record[idx[tgt.field]]), 64)
		if err != nil {
			return s, fmt.Errorf("failed to parse %s: %v", tgt.field, err)
		}
		*tgt.dst = v
	}
	return s, nil
}

// parseTripID accepts integer identifiers, including integral values
// written in float notation ("1202590843006.0").
func parseTripID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("failed to parse %s %q: not an integer", FieldTripID, raw)
	}
	return int64(f), nil
}
