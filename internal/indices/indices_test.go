package indices

import (
	"math"
	"testing"
	"time"

	"hoboqc/domain/series"
)

func hourlyFromTemps(t *testing.T, start string, temps []float64) []series.HourlyRecord {
	t.Helper()
	base, err := time.Parse(time.DateTime, start)
	if err != nil {
		t.Fatal(err)
	}
	records := make([]series.HourlyRecord, len(temps))
	for i, ta := range temps {
		records[i] = series.HourlyRecord{
			Timestamp:      base.Add(time.Duration(i) * time.Hour),
			RawTemperature: ta,
			Temperature:    ta,
			Provenance:     series.ProvenanceMeasured,
		}
	}
	return records
}

func TestCompute_FlashinessAndCoV(t *testing.T) {
	records := hourlyFromTemps(t, "2018-12-10 00:00:00", []float64{1, 2, 3, 4})

	s, err := Compute(records)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if math.Abs(s.Flashiness-1.0) > 1e-12 {
		t.Errorf("flashiness = %v, want 1.0", s.Flashiness)
	}

	// Sample stddev of [1,2,3,4] is sqrt(5/3), mean is 2.5.
	wantCoV := math.Sqrt(5.0/3.0) / 2.5
	if math.Abs(s.CoefficientOfVariation-wantCoV) > 1e-12 {
		t.Errorf("coefficient of variation = %v, want %v", s.CoefficientOfVariation, wantCoV)
	}

	if math.Abs(s.Mean-2.5) > 1e-12 {
		t.Errorf("mean = %v, want 2.5", s.Mean)
	}

	// Four hours never complete a six-hour window.
	if s.MaxSixHourChange != 0 {
		t.Errorf("max six-hour change = %v, want 0 without a full window", s.MaxSixHourChange)
	}
}

func TestCompute_MaxSixHourChange(t *testing.T) {
	temps := []float64{5, 5, 5, 5, 5, 5, 5, 2, 9, 5, 5, 5}
	records := hourlyFromTemps(t, "2018-12-10 00:00:00", temps)

	s, err := Compute(records)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	// The sharpest trailing window spans both the dip to 2 and the peak at 9.
	if math.Abs(s.MaxSixHourChange-7.0) > 1e-12 {
		t.Errorf("max six-hour change = %v, want 7.0", s.MaxSixHourChange)
	}
}

func TestCompute_DayNightAndAmplitude(t *testing.T) {
	// Two full days: 10 °C during [6,18), 0 °C otherwise.
	temps := make([]float64, 48)
	for i := range temps {
		if h := i % 24; h >= 6 && h < 18 {
			temps[i] = 10
		}
	}
	records := hourlyFromTemps(t, "2018-12-10 00:00:00", temps)

	s, err := Compute(records)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if s.DayMean != 10 {
		t.Errorf("day mean = %v, want 10", s.DayMean)
	}
	if s.NightMean != 0 {
		t.Errorf("night mean = %v, want 0", s.NightMean)
	}
	if s.MeanDailyAmplitude != 10 {
		t.Errorf("mean daily amplitude = %v, want 10", s.MeanDailyAmplitude)
	}
}

func TestCompute_FractionRegressed(t *testing.T) {
	records := hourlyFromTemps(t, "2018-12-10 00:00:00", []float64{1, 2, 3, 4})
	records[1].Provenance = series.ProvenanceRegressed

	s, err := Compute(records)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if s.RegressedHours != 1 || s.TotalHours != 4 {
		t.Errorf("regressed/total = %d/%d, want 1/4", s.RegressedHours, s.TotalHours)
	}
	if math.Abs(s.FractionRegressed-0.25) > 1e-12 {
		t.Errorf("fraction regressed = %v, want 0.25", s.FractionRegressed)
	}
}

func TestCompute_RejectsUndefinedTemperatures(t *testing.T) {
	records := hourlyFromTemps(t, "2018-12-10 00:00:00", []float64{1, 2})
	records[1].Temperature = math.NaN()

	if _, err := Compute(records); err == nil {
		t.Fatal("series with undefined temperatures accepted")
	}
}

func TestCompute_DegenerateMeanGuard(t *testing.T) {
	records := hourlyFromTemps(t, "2018-12-10 00:00:00", []float64{-1, 1, -1, 1})

	s, err := Compute(records)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if math.IsInf(s.CoefficientOfVariation, 0) || math.IsNaN(s.CoefficientOfVariation) {
		t.Errorf("coefficient of variation = %v, want a guarded finite value", s.CoefficientOfVariation)
	}
}
