package tsv

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"

	"hoboqc/domain/series"
	"hoboqc/internal/errors"
)

// TableWriter writes the filled hourly series as a tab-separated table with
// columns date, hour, th (3 decimal places) and origin (H measured,
// R regressed).
type TableWriter struct {
	path string
}

// NewTableWriter creates a writer targeting the given path.
func NewTableWriter(path string) *TableWriter {
	return &TableWriter{path: path}
}

// WriteHourly writes one row per hourly record. Every record must carry a
// defined temperature; the infill stage guarantees that for a completed run.
func (w *TableWriter) WriteHourly(ctx context.Context, runID string, records []series.HourlyRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, rec := range records {
		if !rec.HasTemperature() {
			return errors.InternalError("refusing to write undefined temperature for " + rec.Timestamp.String())
		}
	}

	f, err := os.Create(w.path)
	if err != nil {
		return errors.IOError("failed to create "+w.path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	cw.Comma = '\t'

	if err := cw.Write([]string{"date", "hour", "th", "origin"}); err != nil {
		return errors.IOError("failed to write header", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Date(),
			strconv.Itoa(rec.Hour()),
			strconv.FormatFloat(rec.Temperature, 'f', 3, 64),
			rec.Provenance.Code(),
		}
		if err := cw.Write(row); err != nil {
			return errors.IOError("failed to write row", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.IOError("failed to flush "+w.path, err)
	}
	return nil
}
