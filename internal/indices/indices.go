package indices

import (
	"math"

	"github.com/montanaflynn/stats"

	"hoboqc/domain/series"
	"hoboqc/internal/errors"
)

// SixHourWindow is the trailing window width for the most-rapid-change index.
const SixHourWindow = 6

// Day covers hours [6,18); night is the complement.
const (
	DayStartHour = 6
	DayEndHour   = 18
)

// meanTolerance guards the coefficient-of-variation denominator against a
// degenerate (near-zero) mean.
const meanTolerance = 1e-12

// Summary holds the derived climate indices of the completed hourly series.
type Summary struct {
	Mean                   float64
	MeanDailyAmplitude     float64
	CoefficientOfVariation float64
	Flashiness             float64
	MaxSixHourChange       float64
	DayMean                float64
	NightMean              float64
	FractionRegressed      float64
	RegressedHours         int
	TotalHours             int
}

// Compute derives the summary indices from the infilled hourly series. Every
// record must carry a defined temperature; an undefined one means the infill
// stage was skipped, which is a programming error, not a data condition.
func Compute(hourly []series.HourlyRecord) (Summary, error) {
	if len(hourly) == 0 {
		return Summary{}, errors.PreconditionFailed("no hourly records")
	}

	values := make([]float64, len(hourly))
	for i, h := range hourly {
		if !h.HasTemperature() {
			return Summary{}, errors.InternalError("hourly series still contains undefined temperatures")
		}
		values[i] = h.Temperature
	}

	mean, _ := stats.Mean(values)

	sd := 0.0
	if len(values) > 1 {
		sd, _ = stats.StandardDeviationSample(values)
	}
	cov := 0.0
	if math.Abs(mean) > meanTolerance {
		cov = sd / mean
	}

	s := Summary{
		Mean:                   mean,
		MeanDailyAmplitude:     meanDailyAmplitude(hourly),
		CoefficientOfVariation: cov,
		Flashiness:             flashiness(values),
		MaxSixHourChange:       maxWindowChange(values, SixHourWindow),
		FractionRegressed:      0,
		TotalHours:             len(hourly),
	}

	s.DayMean, s.NightMean = dayNightMeans(hourly)

	for _, h := range hourly {
		if h.Provenance == series.ProvenanceRegressed {
			s.RegressedHours++
		}
	}
	s.FractionRegressed = float64(s.RegressedHours) / float64(s.TotalHours)

	return s, nil
}

// meanDailyAmplitude averages each calendar day's (max - min) across days.
func meanDailyAmplitude(hourly []series.HourlyRecord) float64 {
	type span struct{ min, max float64 }
	days := make(map[string]*span)
	order := make([]string, 0)
	for _, h := range hourly {
		d := h.Date()
		sp, ok := days[d]
		if !ok {
			days[d] = &span{min: h.Temperature, max: h.Temperature}
			order = append(order, d)
			continue
		}
		if h.Temperature < sp.min {
			sp.min = h.Temperature
		}
		if h.Temperature > sp.max {
			sp.max = h.Temperature
		}
	}

	total := 0.0
	for _, d := range order {
		total += days[d].max - days[d].min
	}
	return total / float64(len(order))
}

// flashiness is the mean absolute first difference across consecutive hours.
func flashiness(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(values); i++ {
		total += math.Abs(values[i] - values[i-1])
	}
	return total / float64(len(values)-1)
}

// maxWindowChange is the maximum (window max - window min) over all trailing
// windows of the given width. Shorter series yield 0.
func maxWindowChange(values []float64, width int) float64 {
	maxes := series.RollingMax(values, width)
	mins := series.RollingMin(values, width)

	best := 0.0
	for i := range values {
		if math.IsNaN(maxes[i]) {
			continue
		}
		if change := maxes[i] - mins[i]; change > best {
			best = change
		}
	}
	return best
}

func dayNightMeans(hourly []series.HourlyRecord) (day, night float64) {
	var dayVals, nightVals []float64
	for _, h := range hourly {
		if hr := h.Hour(); hr >= DayStartHour && hr < DayEndHour {
			dayVals = append(dayVals, h.Temperature)
		} else {
			nightVals = append(nightVals, h.Temperature)
		}
	}
	if len(dayVals) > 0 {
		day, _ = stats.Mean(dayVals)
	}
	if len(nightVals) > 0 {
		night, _ = stats.Mean(nightVals)
	}
	return day, night
}
