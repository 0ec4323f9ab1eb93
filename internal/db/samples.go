package db

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/banshee-data/trip.features/internal/telematics"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkTableName(table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}

// CreateSampleTable creates a raw telematics table with the canonical
// columns if it does not already exist.
func (db *DB) CreateSampleTable(ctx context.Context, table string) error {
	if err := checkTableName(table); err != nil {
		return err
	}
	cols := make([]string, len(telematics.RequiredFields))
	for i, f := range telematics.RequiredFields {
		typ := "DOUBLE"
		if f == telematics.FieldTripID {
			typ = "INTEGER NOT NULL"
		}
		cols[i] = fmt.Sprintf("%q %s", f, typ)
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (\n\t%s\n)", table, strings.Join(cols, ",\n\t"))
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return nil
}

// ImportSamples appends samples to a raw telematics table, creating it
// first if needed. The insert runs in a single transaction.
func (db *DB) ImportSamples(ctx context.Context, table string, samples []telematics.Sample) error {
	if err := db.CreateSampleTable(ctx, table); err != nil {
		return err
	}

	quoted := make([]string, len(telematics.RequiredFields))
	for i, f := range telematics.RequiredFields {
		quoted[i] = strconv.Quote(f)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(quoted)), ", ")
	query := fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)", table, strings.Join(quoted, ", "), placeholders)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare import: %w", err)
	}
	defer stmt.Close()

	for _, s := range samples {
		if _, err := stmt.ExecContext(ctx,
			s.TripID, s.Accuracy, s.Bearing, s.Second, s.Speed,
			s.AccelX, s.AccelY, s.AccelZ, s.GyroX, s.GyroY, s.GyroZ,
		); err != nil {
			return fmt.Errorf("failed to insert sample for trip %d: %w", s.TripID, err)
		}
	}
	return tx.Commit()
}

// LoadSamples reads a raw telematics table. The table's column set is
// validated before any row is read, so a mismatch returns a
// *telematics.SchemaError and no samples.
func (db *DB) LoadSamples(ctx context.Context, table string) (telematics.Input, error) {
	if err := checkTableName(table); err != nil {
		return telematics.Input{}, err
	}
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %q", table))
	if err != nil {
		return telematics.Input{}, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	fields, err := rows.Columns()
	if err != nil {
		return telematics.Input{}, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	if err := telematics.ValidateFields(fields); err != nil {
		return telematics.Input{}, err
	}

	targets := make([]any, len(fields))
	values := make([]any, len(fields))
	for i := range values {
		targets[i] = &values[i]
	}

	var samples []telematics.Sample
	for rows.Next() {
		if err := rows.Scan(targets...); err != nil {
			return telematics.Input{}, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		s, err := sampleFromRow(fields, values)
		if err == nil {
			err = telematics.CheckOrdering(s)
		}
		if err != nil {
			return telematics.Input{}, fmt.Errorf("%s row %d: %w", table, len(samples)+1, err)
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return telematics.Input{}, err
	}
	return telematics.Input{Fields: fields, Samples: samples}, nil
}

func sampleFromRow(fields []string, values []any) (telematics.Sample, error) {
	var s telematics.Sample
	for i, f := range fields {
		if f == telematics.FieldTripID {
			id, err := toInt64(values[i])
			if err != nil {
				return s, fmt.Errorf("%s: %w", f, err)
			}
			s.TripID = id
			continue
		}
		v, err := toFloat64(values[i])
		if err != nil {
			return s, fmt.Errorf("%s: %w", f, err)
		}
		switch f {
		case telematics.FieldAccuracy:
			s.Accuracy = v
		case telematics.FieldBearing:
			s.Bearing = v
		case telematics.FieldSecond:
			s.Second = v
		case telematics.FieldSpeed:
			s.Speed = v
		case telematics.FieldAccelX:
			s.AccelX = v
		case telematics.FieldAccelY:
			s.AccelY = v
		case telematics.FieldAccelZ:
			s.AccelZ = v
		case telematics.FieldGyroX:
			s.GyroX = v
		case telematics.FieldGyroY:
			s.GyroY = v
		case telematics.FieldGyroZ:
			s.GyroZ = v
		}
	}
	return s, nil
}

func toFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	case []byte:
		return strconv.ParseFloat(string(x), 64)
	case string:
		return strconv.ParseFloat(x, 64)
	case nil:
		return 0, fmt.Errorf("null value")
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

func toInt64(v any) (int64, error) {
	if x, ok := v.(int64); ok {
		return x, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	return int64(f), nil
}
