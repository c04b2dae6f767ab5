package series

import (
	"math"
	"testing"
)

func TestRollingVariance_TrailingWindow(t *testing.T) {
	got := RollingVariance([]float64{1, 2, 3, 4}, 3)

	if !math.IsNaN(got[0]) || !math.IsNaN(got[1]) {
		t.Errorf("expected NaN for indexes without a full trailing window, got %v", got[:2])
	}
	// Sample variance of [1,2,3] and [2,3,4] is 1.
	if math.Abs(got[2]-1.0) > 1e-12 {
		t.Errorf("variance at index 2 = %v, want 1.0", got[2])
	}
	if math.Abs(got[3]-1.0) > 1e-12 {
		t.Errorf("variance at index 3 = %v, want 1.0", got[3])
	}
}

func TestRollingVariance_FrozenSeries(t *testing.T) {
	got := RollingVariance([]float64{3, 3, 3, 3, 3, 3}, 6)
	if got[5] != 0 {
		t.Errorf("variance of identical values = %v, want 0", got[5])
	}
}

func TestRollingStdDev_MatchesSampleFormula(t *testing.T) {
	got := RollingStdDev([]float64{1, 2, 1, 2, 1, 2}, 6)
	// Sample variance: 6 squared deviations of 0.25 over n-1=5.
	want := math.Sqrt(1.5 / 5)
	if math.Abs(got[5]-want) > 1e-12 {
		t.Errorf("stddev = %v, want %v", got[5], want)
	}
}

func TestRollingMinMax(t *testing.T) {
	xs := []float64{4, 1, 3, 9, 2}
	maxes := RollingMax(xs, 3)
	mins := RollingMin(xs, 3)

	if !math.IsNaN(maxes[1]) || !math.IsNaN(mins[1]) {
		t.Error("expected NaN before the first full window")
	}
	if maxes[3] != 9 || mins[3] != 1 {
		t.Errorf("window [1,3,9]: max=%v min=%v, want 9 and 1", maxes[3], mins[3])
	}
	if maxes[4] != 9 || mins[4] != 2 {
		t.Errorf("window [3,9,2]: max=%v min=%v, want 9 and 2", maxes[4], mins[4])
	}
}

func TestCenteredMax_TruncatesAtBoundaries(t *testing.T) {
	xs := []float64{5, 1, 2, 8, 3}
	got := CenteredMax(xs, 1)
	want := []float64{5, 5, 8, 8, 8}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCenteredMax_WideWindow(t *testing.T) {
	xs := []float64{0, 0, 0, 13000, 0, 0, 0, 0}
	got := CenteredMax(xs, 3)
	if got[0] != 13000 {
		t.Errorf("index 0 should see the spike at distance 3, got %v", got[0])
	}
	if got[7] != 0 {
		t.Errorf("index 7 is outside the spike's reach, got %v", got[7])
	}
}
