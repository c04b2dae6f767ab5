package qc

import (
	"math"

	"hoboqc/domain/series"
)

// Fixed thresholds for this dataset. They are deliberately constants, not
// configuration: the checks must be reproducible and testable in isolation.
const (
	// Plausible physical band for the sensor's site.
	TempMin = -20.0 // °C
	TempMax = 70.0  // °C
	LuxMin  = 0.0
	LuxMax  = 320000.0

	// Maximum plausible temperature change per 10-minute step.
	MaxTempStep = 1.0 // °C

	// Persistence (minimum variability): trailing window width and the
	// variance below which the sensor counts as numerically frozen.
	PersistenceWindow    = 6
	PersistenceTolerance = 1e-11

	// Consistency (maximum variability): trailing window width for the
	// reference stddev, the full spike factor, and the epsilon absorbing
	// floating-point noise in the comparison.
	ConsistencyWindow  = 6
	ConsistencyFactor  = 8.0
	ConsistencyEpsilon = 1e-9

	// Light interference: daytime hour band (inclusive), the two lux
	// thresholds and the two centered half-widths they are checked over.
	DaytimeStartHour = 6
	DaytimeEndHour   = 18
	LuxNearThreshold = 9300.1
	LuxNearHalfWidth = 1
	LuxWideThreshold = 12000.0
	LuxWideHalfWidth = 3
)

// Each check consumes the full reading sequence and returns one boolean flag
// per reading, independent of all other checks. No check errors on well-formed
// input: an undefined window or missing neighbor resolves to "not flagged".

// RangeCheck flags readings whose temperature or light intensity falls outside
// the plausible physical band.
func RangeCheck(readings []series.Reading) []bool {
	flags := make([]bool, len(readings))
	for i, r := range readings {
		flags[i] = r.Temperature < TempMin || r.Temperature > TempMax ||
			r.Lux < LuxMin || r.Lux > LuxMax
	}
	return flags
}

// RateOfChangeCheck flags readings whose temperature jumped by more than
// MaxTempStep since the previous reading. The first reading has no
// predecessor and is never flagged.
func RateOfChangeCheck(readings []series.Reading) []bool {
	flags := make([]bool, len(readings))
	for i := 1; i < len(readings); i++ {
		flags[i] = math.Abs(readings[i].Temperature-readings[i-1].Temperature) > MaxTempStep
	}
	return flags
}

// PersistenceCheck flags readings whose trailing one-hour window (six points
// including the current one) has a temperature variance below the frozen
// tolerance. The first five readings lack a full window and are not flagged.
func PersistenceCheck(readings []series.Reading) []bool {
	variance := series.RollingVariance(series.Temperatures(readings), PersistenceWindow)
	flags := make([]bool, len(readings))
	for i, v := range variance {
		if math.IsNaN(v) {
			continue
		}
		flags[i] = v < PersistenceTolerance
	}
	return flags
}

// ConsistencyCheck flags readings whose combined forward+backward first
// difference exceeds what the past hour's variability allows.
//
// The reference stddev is taken over the trailing six-point window lagged by
// one, so it covers only the past hour and excludes the current point. The
// full factor (8) is split half per neighbor: a point with both neighbors is
// compared against 8σ, a boundary point with a single neighbor against 4σ,
// which avoids systematically over-flagging sharp but genuine transitions
// such as sunrise.
func ConsistencyCheck(readings []series.Reading) []bool {
	temps := series.Temperatures(readings)
	sd := series.RollingStdDev(temps, ConsistencyWindow)

	flags := make([]bool, len(readings))
	for i := range readings {
		if i == 0 {
			continue
		}
		sigma := sd[i-1]
		if math.IsNaN(sigma) {
			continue
		}

		diff := 0.0
		sides := 0
		if i-1 >= 0 {
			diff += math.Abs(temps[i] - temps[i-1])
			sides++
		}
		if i+1 < len(temps) {
			diff += math.Abs(temps[i] - temps[i+1])
			sides++
		}
		if sides == 0 {
			continue
		}

		threshold := (ConsistencyFactor/2)*sigma*float64(sides) + ConsistencyEpsilon
		flags[i] = diff > threshold
	}
	return flags
}

// LightInterferenceCheck flags daytime readings under sustained high
// irradiation: the near threshold must be exceeded at the point or an
// immediate neighbor, and the wide threshold within three points either side.
// Requiring both suppresses brief lux spikes while catching the sustained
// periods that bias the temperature channel.
func LightInterferenceCheck(readings []series.Reading) []bool {
	lux := series.Luxes(readings)
	near := series.CenteredMax(lux, LuxNearHalfWidth)
	wide := series.CenteredMax(lux, LuxWideHalfWidth)

	flags := make([]bool, len(readings))
	for i, r := range readings {
		hour := r.Timestamp.Hour()
		if hour < DaytimeStartHour || hour > DaytimeEndHour {
			continue
		}
		flags[i] = near[i] > LuxNearThreshold && wide[i] > LuxWideThreshold
	}
	return flags
}
