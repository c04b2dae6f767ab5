package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hoboqc/domain/series"
	"hoboqc/internal/errors"
	"hoboqc/internal/hourly"
	"hoboqc/internal/indices"
	"hoboqc/internal/infill"
	"hoboqc/internal/qc"
	"hoboqc/ports"
)

// Pipeline wires the QC, aggregation, infill and index stages over one
// sensor dataset. It is a one-shot batch: construct, Run once, inspect the
// Result. Re-running on failure re-reads everything from scratch.
type Pipeline struct {
	log        *slog.Logger
	primary    ports.PrimaryReader
	references []ports.ReferenceReader
	tables     []ports.TableSink
	report     ports.ReportSink // optional
}

// NewPipeline creates a pipeline from its input and output ports. report may
// be nil when no summary workbook is wanted.
func NewPipeline(log *slog.Logger, primary ports.PrimaryReader, references []ports.ReferenceReader, tables []ports.TableSink, report ports.ReportSink) *Pipeline {
	return &Pipeline{
		log:        log.With("component", "pipeline"),
		primary:    primary,
		references: references,
		tables:     tables,
		report:     report,
	}
}

// Result carries everything a run derives.
type Result struct {
	RunID   string
	Hourly  []series.HourlyRecord
	Model   infill.Model
	Totals  qc.Totals
	Summary indices.Summary
}

// Run executes the full pipeline. Any error is fatal for the run and no
// output is written past the failing stage.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	log := p.log.With("run_id", runID)

	// Load. The three input files are independent, so they load concurrently;
	// everything downstream is strictly sequential and deterministic.
	var readings []series.Reading
	refs := make([]series.ReferenceSeries, len(p.references))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		readings, err = p.primary.Read(gctx)
		return err
	})
	for i, reader := range p.references {
		i, reader := i, reader
		g.Go(func() error {
			var err error
			refs[i], err = reader.Read(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "loading input files failed")
	}
	log.Info("inputs loaded", "readings", len(readings), "reference_series", len(refs))

	if err := series.ValidateCadence(readings); err != nil {
		return nil, errors.Wrap(errors.PreconditionFailed(err.Error()), "sensor series failed cadence validation")
	}

	// QC battery and flag aggregation.
	battery := qc.NewBattery()
	checked := battery.Run(readings)
	log.Info("qc battery complete",
		"range", checked.Totals.Range,
		"rate_of_change", checked.Totals.RateOfChange,
		"persistence", checked.Totals.Persistence,
		"consistency", checked.Totals.Consistency,
		"light", checked.Totals.Light,
	)

	// Hourly aggregation.
	hours, err := hourly.Aggregate(readings, checked.Counts)
	if err != nil {
		return nil, errors.Wrap(err, "hourly aggregation failed")
	}
	defective := 0
	for _, h := range hours {
		if h.NeedsInfill {
			defective++
		}
	}
	log.Info("hourly aggregation complete", "hours", len(hours), "marked_for_infill", defective)

	// Regression infill: fit one model per station, keep the higher R².
	model, bestRef, err := infill.SelectModel(hours, refs)
	if err != nil {
		return nil, errors.Wrap(err, "model selection failed")
	}
	log.Info("infill model selected",
		"station", model.Station,
		"intercept", model.Intercept,
		"slope", model.Slope,
		"r_squared", model.R2,
	)

	filled, regressed, err := infill.Apply(model, bestRef, hours)
	if err != nil {
		return nil, errors.Wrap(err, "infill failed")
	}
	log.Info("infill complete", "regressed_hours", regressed, "total_hours", len(filled))

	// Indices.
	summary, err := indices.Compute(filled)
	if err != nil {
		return nil, errors.Wrap(err, "index computation failed")
	}
	log.Info("indices computed",
		"mean", summary.Mean,
		"daily_amplitude", summary.MeanDailyAmplitude,
		"flashiness", summary.Flashiness,
		"fraction_regressed", summary.FractionRegressed,
	)

	// Output sinks.
	for _, sink := range p.tables {
		if err := sink.WriteHourly(ctx, runID, filled); err != nil {
			return nil, errors.Wrap(err, "writing hourly table failed")
		}
	}
	if p.report != nil {
		if err := p.report.WriteSummary(ctx, runID, model, checked.Totals, summary); err != nil {
			return nil, errors.Wrap(err, "writing summary report failed")
		}
	}

	return &Result{
		RunID:   runID,
		Hourly:  filled,
		Model:   model,
		Totals:  checked.Totals,
		Summary: summary,
	}, nil
}
