package series

import (
	"fmt"
	"math"
	"time"
)

// Cadence is the fixed spacing of the raw sensor series.
const Cadence = 10 * time.Minute

// ReadingsPerHour is the number of raw readings aggregated into one HourlyRecord.
const ReadingsPerHour = 6

// Reading is one raw sensor row: a sequence id, a timestamp on the 10-minute
// grid, and the two measured channels.
type Reading struct {
	Seq         int
	Timestamp   time.Time
	Temperature float64 // °C
	Lux         float64 // light intensity, lux
}

// FlagSet holds the outcome of the five plausibility checks for one Reading.
// Flags are additive: a check sets its own field and never touches the others.
type FlagSet struct {
	Range        bool
	RateOfChange bool
	Persistence  bool
	Consistency  bool
	Light        bool
}

// Count returns the number of raised flags (0-5).
func (f FlagSet) Count() int {
	n := 0
	for _, b := range []bool{f.Range, f.RateOfChange, f.Persistence, f.Consistency, f.Light} {
		if b {
			n++
		}
	}
	return n
}

// Provenance marks whether an hourly temperature was measured directly or
// substituted by the regression model.
type Provenance string

const (
	ProvenanceMeasured  Provenance = "measured"
	ProvenanceRegressed Provenance = "regressed"
)

// Code returns the single-letter origin marker used in the output table.
func (p Provenance) Code() string {
	if p == ProvenanceRegressed {
		return "R"
	}
	return "H"
}

// HourlyRecord is the aggregate of six consecutive Readings sharing one hour.
//
// RawTemperature is the plain 6-point mean and is always present; the
// regression model trains on it for every hour, flagged or not. Temperature is
// the published value: NaN while NeedsInfill is set, filled exactly once by the
// infill stage, never NaN afterwards.
type HourlyRecord struct {
	Timestamp      time.Time // start of the hour
	RawTemperature float64
	Temperature    float64
	Lux            float64
	FlagCount      int
	NeedsInfill    bool
	Provenance     Provenance
}

// Date returns the record's calendar date in ISO form.
func (h HourlyRecord) Date() string {
	return h.Timestamp.Format("2006-01-02")
}

// Hour returns the record's hour of day (0-23).
func (h HourlyRecord) Hour() int {
	return h.Timestamp.Hour()
}

// HasTemperature reports whether the published temperature is defined.
func (h HourlyRecord) HasTemperature() bool {
	return !math.IsNaN(h.Temperature)
}

// ReferenceSeries is one external weather station's hourly temperature series.
// It is read-only input, consumed only by the regression infill stage.
type ReferenceSeries struct {
	Station    string
	Timestamps []time.Time
	Values     []float64
}

// Len returns the number of reference hours.
func (r ReferenceSeries) Len() int {
	return len(r.Values)
}

// AlignedWith verifies the hard precondition that the reference series matches
// the hourly series one-to-one in length and timestamps. A mismatch is fatal
// for the whole run, never repaired.
func (r ReferenceSeries) AlignedWith(hourly []HourlyRecord) error {
	if len(r.Timestamps) != len(r.Values) {
		return fmt.Errorf("reference series %s: %d timestamps for %d values", r.Station, len(r.Timestamps), len(r.Values))
	}
	if r.Len() != len(hourly) {
		return fmt.Errorf("reference series %s has %d hours, sensor series has %d", r.Station, r.Len(), len(hourly))
	}
	for i, ts := range r.Timestamps {
		if !ts.Equal(hourly[i].Timestamp) {
			return fmt.Errorf("reference series %s diverges at index %d: %s vs %s",
				r.Station, i, ts.Format(time.DateTime), hourly[i].Timestamp.Format(time.DateTime))
		}
	}
	return nil
}

// ValidateCadence verifies that the raw series is strictly increasing with
// fixed 10-minute spacing. Gaps are not resampled anywhere downstream, so a
// broken cadence is a precondition failure, reported at the first offense.
func ValidateCadence(readings []Reading) error {
	if len(readings) == 0 {
		return fmt.Errorf("empty sensor series")
	}
	for i := 1; i < len(readings); i++ {
		got := readings[i].Timestamp.Sub(readings[i-1].Timestamp)
		if got != Cadence {
			return fmt.Errorf("cadence break at %s: %s after previous reading, want %s",
				readings[i].Timestamp.Format(time.DateTime), got, Cadence)
		}
	}
	return nil
}

// Temperatures extracts the temperature channel as a plain slice.
func Temperatures(readings []Reading) []float64 {
	out := make([]float64, len(readings))
	for i, r := range readings {
		out[i] = r.Temperature
	}
	return out
}

// Luxes extracts the light-intensity channel as a plain slice.
func Luxes(readings []Reading) []float64 {
	out := make([]float64, len(readings))
	for i, r := range readings {
		out[i] = r.Lux
	}
	return out
}
