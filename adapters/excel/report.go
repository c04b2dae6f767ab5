package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"hoboqc/internal/errors"
	"hoboqc/internal/indices"
	"hoboqc/internal/infill"
	"hoboqc/internal/qc"
)

// ReportWriter writes a one-sheet summary workbook: the climate indices, the
// per-check flag totals, and the selected infill model.
type ReportWriter struct {
	path string
}

// NewReportWriter creates a writer targeting the given xlsx path.
func NewReportWriter(path string) *ReportWriter {
	return &ReportWriter{path: path}
}

// WriteSummary writes the workbook. Numbers only; narrative reporting is not
// this tool's job.
func (w *ReportWriter) WriteSummary(ctx context.Context, runID string, model infill.Model, totals qc.Totals, summary indices.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Summary"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]interface{}{
		{"run_id", runID},
		{},
		{"index", "value"},
		{"mean_temperature", summary.Mean},
		{"mean_daily_amplitude", summary.MeanDailyAmplitude},
		{"coefficient_of_variation", summary.CoefficientOfVariation},
		{"flashiness", summary.Flashiness},
		{"max_6h_change", summary.MaxSixHourChange},
		{"day_mean", summary.DayMean},
		{"night_mean", summary.NightMean},
		{"fraction_regressed", summary.FractionRegressed},
		{"regressed_hours", fmt.Sprintf("%d of %d", summary.RegressedHours, summary.TotalHours)},
		{},
		{"check", "flagged readings"},
		{"range", totals.Range},
		{"rate_of_change", totals.RateOfChange},
		{"persistence", totals.Persistence},
		{"consistency", totals.Consistency},
		{"light_interference", totals.Light},
		{},
		{"infill model", model.Station},
		{"intercept", model.Intercept},
		{"slope", model.Slope},
		{"r_squared", model.R2},
	}

	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return errors.Wrap(err, "failed to address summary cell")
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return errors.Wrap(err, "failed to set summary cell")
			}
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return errors.IOError("failed to save summary workbook "+w.path, err)
	}
	return nil
}
