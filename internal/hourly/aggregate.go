package hourly

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"hoboqc/domain/series"
	"hoboqc/internal/errors"
)

// DefectTolerance is the per-hour flag budget: an hour whose summed flag count
// exceeds it loses its measured temperature and is marked for regression
// infill. A single failing check within an hour is treated as noise, two or
// more as evidence of a genuine defect.
const DefectTolerance = 1

// Aggregate buckets the 10-minute readings into hourly records: arithmetic
// mean of temperature and light intensity, sum of the per-reading flag counts.
//
// The raw mean is kept on every record regardless of flags so the infill model
// can train on the full series; the published temperature is NaN for hours
// over the defect tolerance until the infill stage replaces it.
//
// The series must start on an hour boundary and divide into complete
// six-reading buckets; anything else is a precondition failure.
func Aggregate(readings []series.Reading, flagCounts []int) ([]series.HourlyRecord, error) {
	if len(readings) != len(flagCounts) {
		return nil, errors.InternalError("flag counts do not match readings")
	}
	if len(readings) == 0 {
		return nil, errors.PreconditionFailed("no readings to aggregate")
	}
	if len(readings)%series.ReadingsPerHour != 0 {
		return nil, errors.PreconditionFailedf("series length %d is not a whole number of hours", len(readings))
	}
	if readings[0].Timestamp.Minute() != 0 {
		return nil, errors.PreconditionFailedf("series starts mid-hour at %s", readings[0].Timestamp)
	}

	records := make([]series.HourlyRecord, 0, len(readings)/series.ReadingsPerHour)
	for start := 0; start < len(readings); start += series.ReadingsPerHour {
		bucket := readings[start : start+series.ReadingsPerHour]
		hourStart := bucket[0].Timestamp

		temps := make([]float64, len(bucket))
		luxes := make([]float64, len(bucket))
		flagCount := 0
		for j, r := range bucket {
			if !r.Timestamp.Equal(hourStart.Add(time.Duration(j) * series.Cadence)) {
				return nil, errors.PreconditionFailedf("bucket starting %s is not six contiguous readings", hourStart)
			}
			temps[j] = r.Temperature
			luxes[j] = r.Lux
			flagCount += flagCounts[start+j]
		}

		meanTemp, _ := stats.Mean(temps)
		meanLux, _ := stats.Mean(luxes)

		rec := series.HourlyRecord{
			Timestamp:      hourStart,
			RawTemperature: meanTemp,
			Temperature:    meanTemp,
			Lux:            meanLux,
			FlagCount:      flagCount,
			Provenance:     series.ProvenanceMeasured,
		}
		if flagCount > DefectTolerance {
			rec.Temperature = math.NaN()
			rec.NeedsInfill = true
		}
		records = append(records, rec)
	}
	return records, nil
}
