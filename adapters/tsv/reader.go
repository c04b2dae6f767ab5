package tsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"hoboqc/domain/series"
	"hoboqc/internal/errors"
)

// Timestamp layouts of the input tables.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	primaryHeader   = []string{"id", "date", "hm", "ta", "lux"}
	referenceHeader = []string{"date", "hm", "ta"}
)

// PrimaryReader reads the HOBO sensor's tab-separated 10-minute log.
type PrimaryReader struct {
	path       string
	warmupRows int
	start, end time.Time // zero bounds leave the interval open
}

// NewPrimaryReader creates a reader for the primary sensor file. warmupRows
// leading data rows are dropped as instrument warm-up; start/end bound the
// analysis interval (inclusive).
func NewPrimaryReader(path string, warmupRows int, start, end time.Time) *PrimaryReader {
	return &PrimaryReader{path: path, warmupRows: warmupRows, start: start, end: end}
}

// Read parses the sensor log. Malformed headers or cells are fatal; no
// best-effort row skipping happens here, a broken input aborts the run.
func (r *PrimaryReader) Read(ctx context.Context) ([]series.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := readTable(r.path, primaryHeader)
	if err != nil {
		return nil, err
	}

	readings := make([]series.Reading, 0, len(rows))
	for i, row := range rows {
		if i < r.warmupRows {
			continue
		}

		seq, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, errors.InvalidInputf("%s row %d: bad id %q", r.path, i+2, row[0])
		}
		ts, err := parseTimestamp(row[1], row[2])
		if err != nil {
			return nil, errors.InvalidInputf("%s row %d: %v", r.path, i+2, err)
		}
		ta, err := parseFloat(row[3])
		if err != nil {
			return nil, errors.InvalidInputf("%s row %d: bad ta %q", r.path, i+2, row[3])
		}
		lux, err := parseFloat(row[4])
		if err != nil {
			return nil, errors.InvalidInputf("%s row %d: bad lux %q", r.path, i+2, row[4])
		}

		if !r.start.IsZero() && ts.Before(r.start) {
			continue
		}
		if !r.end.IsZero() && ts.After(r.end) {
			continue
		}

		readings = append(readings, series.Reading{
			Seq:         seq,
			Timestamp:   ts,
			Temperature: ta,
			Lux:         lux,
		})
	}

	if len(readings) == 0 {
		return nil, errors.PreconditionFailedf("%s: no readings within the analysis interval", r.path)
	}
	return readings, nil
}

// ReferenceReader reads one weather station's tab-separated hourly series.
type ReferenceReader struct {
	station string
	path    string
}

// NewReferenceReader creates a reader for one reference station file.
func NewReferenceReader(station, path string) *ReferenceReader {
	return &ReferenceReader{station: station, path: path}
}

// Read parses the station file into a ReferenceSeries.
func (r *ReferenceReader) Read(ctx context.Context) (series.ReferenceSeries, error) {
	if err := ctx.Err(); err != nil {
		return series.ReferenceSeries{}, err
	}

	rows, err := readTable(r.path, referenceHeader)
	if err != nil {
		return series.ReferenceSeries{}, err
	}

	ref := series.ReferenceSeries{
		Station:    r.station,
		Timestamps: make([]time.Time, 0, len(rows)),
		Values:     make([]float64, 0, len(rows)),
	}
	for i, row := range rows {
		ts, err := parseTimestamp(row[0], row[1])
		if err != nil {
			return series.ReferenceSeries{}, errors.InvalidInputf("%s row %d: %v", r.path, i+2, err)
		}
		ta, err := parseFloat(row[2])
		if err != nil {
			return series.ReferenceSeries{}, errors.InvalidInputf("%s row %d: bad ta %q", r.path, i+2, row[2])
		}
		ref.Timestamps = append(ref.Timestamps, ts)
		ref.Values = append(ref.Values, ta)
	}
	return ref, nil
}

// readTable opens a tab-separated file, validates the exact header, and
// returns the data rows.
func readTable(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.PreconditionFailedf("input file not found: %s", path)
		}
		return nil, errors.IOError("failed to open "+path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.FieldsPerRecord = len(header)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IOError("failed to parse "+path, err)
	}
	if len(rows) < 2 {
		return nil, errors.PreconditionFailedf("%s must have a header row and at least one data row", path)
	}

	for i, name := range header {
		if strings.TrimSpace(rows[0][i]) != name {
			return nil, errors.PreconditionFailedf("%s: column %d is %q, want %q", path, i+1, rows[0][i], name)
		}
	}
	return rows[1:], nil
}

func parseTimestamp(date, hm string) (time.Time, error) {
	ts, err := time.Parse(dateLayout+" "+timeLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(hm))
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q %q", date, hm)
	}
	return ts, nil
}

// parseFloat accepts both '.' and ',' decimal separators; HOBOware exports
// follow the host locale.
func parseFloat(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
}
