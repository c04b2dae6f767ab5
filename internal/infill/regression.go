package infill

import (
	"gonum.org/v1/gonum/stat"

	"hoboqc/domain/series"
	"hoboqc/internal/errors"
)

// Model is an ordinary-least-squares fit mapping one reference station's
// hourly temperature to a predicted sensor temperature.
type Model struct {
	Station   string
	Intercept float64
	Slope     float64
	R2        float64
}

// Predict returns the modeled sensor temperature for one reference value.
func (m Model) Predict(ref float64) float64 {
	return m.Intercept + m.Slope*ref
}

// Fit trains one OLS model of the raw hourly means against the reference
// series. Flagged hours are deliberately not excluded from training: their
// raw means are assumed to still carry the relationship, which avoids
// shrinking the training set. Alignment with the hourly series is a hard
// precondition.
func Fit(hourly []series.HourlyRecord, ref series.ReferenceSeries) (Model, error) {
	if err := ref.AlignedWith(hourly); err != nil {
		return Model{}, errors.PreconditionFailed(err.Error())
	}
	if len(hourly) < 2 {
		return Model{}, errors.PreconditionFailedf("cannot fit model on %d hours", len(hourly))
	}

	y := make([]float64, len(hourly))
	for i, h := range hourly {
		y[i] = h.RawTemperature
	}

	alpha, beta := stat.LinearRegression(ref.Values, y, nil, false)
	r2 := stat.RSquared(ref.Values, y, nil, alpha, beta)

	return Model{
		Station:   ref.Station,
		Intercept: alpha,
		Slope:     beta,
		R2:        r2,
	}, nil
}

// SelectModel fits one model per candidate reference series and returns the
// one with the higher coefficient of determination, together with the series
// it was fit against. Ties keep the earlier candidate; in practice the R²
// values differ.
func SelectModel(hourly []series.HourlyRecord, refs []series.ReferenceSeries) (Model, series.ReferenceSeries, error) {
	if len(refs) == 0 {
		return Model{}, series.ReferenceSeries{}, errors.PreconditionFailed("no reference series to fit against")
	}

	var best Model
	var bestRef series.ReferenceSeries
	for i, ref := range refs {
		m, err := Fit(hourly, ref)
		if err != nil {
			return Model{}, series.ReferenceSeries{}, err
		}
		if i == 0 || m.R2 > best.R2 {
			best = m
			bestRef = ref
		}
	}
	return best, bestRef, nil
}

// Apply substitutes model predictions for every hour marked for infill and
// stamps its provenance as regressed. Measured hours pass through untouched.
// The returned count is the number of substituted hours.
func Apply(m Model, ref series.ReferenceSeries, hourly []series.HourlyRecord) ([]series.HourlyRecord, int, error) {
	if err := ref.AlignedWith(hourly); err != nil {
		return nil, 0, errors.PreconditionFailed(err.Error())
	}

	out := make([]series.HourlyRecord, len(hourly))
	copy(out, hourly)

	filled := 0
	for i := range out {
		if !out[i].NeedsInfill {
			continue
		}
		out[i].Temperature = m.Predict(ref.Values[i])
		out[i].Provenance = series.ProvenanceRegressed
		out[i].NeedsInfill = false
		filled++
	}
	return out, filled, nil
}
