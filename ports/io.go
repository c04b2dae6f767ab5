package ports

import (
	"context"

	"hoboqc/domain/series"
	"hoboqc/internal/indices"
	"hoboqc/internal/infill"
	"hoboqc/internal/qc"
)

// PrimaryReader loads the raw 10-minute sensor series.
type PrimaryReader interface {
	Read(ctx context.Context) ([]series.Reading, error)
}

// ReferenceReader loads one weather station's hourly reference series.
type ReferenceReader interface {
	Read(ctx context.Context) (series.ReferenceSeries, error)
}

// TableSink receives the completed hourly output table. All sinks write the
// same rows; runID identifies the producing run where the sink keeps history.
type TableSink interface {
	WriteHourly(ctx context.Context, runID string, records []series.HourlyRecord) error
}

// ReportSink receives the run's summary figures.
type ReportSink interface {
	WriteSummary(ctx context.Context, runID string, model infill.Model, totals qc.Totals, summary indices.Summary) error
}
