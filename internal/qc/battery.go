package qc

import (
	"hoboqc/domain/series"
)

// Battery runs the five plausibility checks over the aligned reading sequence
type Battery struct{}

// NewBattery creates a new check battery
func NewBattery() *Battery {
	return &Battery{}
}

// Totals counts how many readings each check flagged across the whole series.
type Totals struct {
	Range        int
	RateOfChange int
	Persistence  int
	Consistency  int
	Light        int
}

// Result carries one FlagSet and one flag count per reading, plus the
// per-check totals for reporting.
type Result struct {
	Flags  []series.FlagSet
	Counts []int
	Totals Totals
}

// Run executes all five checks and aggregates their flags. Every check
// contributes equally: the per-reading count is the plain sum of the five
// booleans, so it always lies in 0..5.
func (b *Battery) Run(readings []series.Reading) Result {
	rangeFlags := RangeCheck(readings)
	rateFlags := RateOfChangeCheck(readings)
	persistFlags := PersistenceCheck(readings)
	consistFlags := ConsistencyCheck(readings)
	lightFlags := LightInterferenceCheck(readings)

	res := Result{
		Flags:  make([]series.FlagSet, len(readings)),
		Counts: make([]int, len(readings)),
	}
	for i := range readings {
		fs := series.FlagSet{
			Range:        rangeFlags[i],
			RateOfChange: rateFlags[i],
			Persistence:  persistFlags[i],
			Consistency:  consistFlags[i],
			Light:        lightFlags[i],
		}
		res.Flags[i] = fs
		res.Counts[i] = fs.Count()

		if fs.Range {
			res.Totals.Range++
		}
		if fs.RateOfChange {
			res.Totals.RateOfChange++
		}
		if fs.Persistence {
			res.Totals.Persistence++
		}
		if fs.Consistency {
			res.Totals.Consistency++
		}
		if fs.Light {
			res.Totals.Light++
		}
	}
	return res
}
