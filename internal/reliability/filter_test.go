package reliability

import (
	"testing"

	"github.com/hughac94/rungrade-backend/internal/binning"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func plausibleBin() binning.Bin {
	return binning.Bin{
		DistanceM:   100,
		GradientPct: 2,
		DurationSec: fptr(30),
		VelocityMps: fptr(3.33), // ~12 km/h
	}
}

func TestFilterKeepsPlausibleBins(t *testing.T) {
	res := Filter([]binning.Bin{plausibleBin(), plausibleBin()}, Options{CheckPlausibility: true})
	if len(res.Kept) != 2 || res.Excluded.Total != 0 {
		t.Fatalf("unexpected result: %+v", res.Excluded)
	}
}

func TestFilterSpeedReasonOnly(t *testing.T) {
	fast := plausibleBin()
	fast.VelocityMps = fptr(35.0 / 3.6) // 35 km/h
	fast.GradientPct = 40               // would also fail gradient; speed must win

	res := Filter([]binning.Bin{fast}, Options{CheckPlausibility: true})
	if len(res.Kept) != 0 {
		t.Fatalf("expected exclusion")
	}
	if res.Excluded.Speed != 1 || res.Excluded.Gradient != 0 || res.Excluded.Total != 1 {
		t.Fatalf("expected single speed exclusion, got %+v", res.Excluded)
	}
}

func TestFilterPreSuppliedSpeedWins(t *testing.T) {
	bin := plausibleBin()
	bin.AvgSpeedKmh = fptr(0.5) // device speed below the walking floor
	res := Filter([]binning.Bin{bin}, Options{CheckPlausibility: true})
	if res.Excluded.Speed != 1 {
		t.Fatalf("expected speed exclusion from device speed, got %+v", res.Excluded)
	}
}

func TestFilterGradientDurationDistance(t *testing.T) {
	steep := plausibleBin()
	steep.GradientPct = -31

	short := plausibleBin()
	short.DurationSec = fptr(0.5)
	short.VelocityMps = nil // keep speed check from firing on 0.5s duration

	empty := plausibleBin()
	empty.DistanceM = 0
	empty.GradientPct = 0
	empty.DurationSec = nil
	empty.VelocityMps = nil

	res := Filter([]binning.Bin{steep, short, empty}, Options{CheckPlausibility: true})
	if res.Excluded.Gradient != 1 || res.Excluded.Duration != 1 || res.Excluded.Distance != 1 {
		t.Fatalf("unexpected exclusions: %+v", res.Excluded)
	}
	if res.Excluded.Total != 3 || len(res.Kept) != 0 {
		t.Fatalf("unexpected totals: %+v", res.Excluded)
	}
}

func TestFilterHeartRateRange(t *testing.T) {
	inRange := plausibleBin()
	inRange.AvgHeartRate = iptr(150)

	tooHigh := plausibleBin()
	tooHigh.AvgHeartRate = iptr(190)

	missing := plausibleBin()

	opts := Options{HeartRate: &HRRange{Min: 100, Max: 180}}
	res := Filter([]binning.Bin{inRange, tooHigh, missing}, opts)
	if len(res.Kept) != 1 {
		t.Fatalf("expected 1 kept bin, got %d", len(res.Kept))
	}
	if res.Excluded.HeartRate != 2 || res.Excluded.Total != 2 {
		t.Fatalf("unexpected exclusions: %+v", res.Excluded)
	}
}

func TestFilterCombinedModes(t *testing.T) {
	fast := plausibleBin()
	fast.VelocityMps = fptr(12)
	fast.AvgHeartRate = iptr(150)

	noHR := plausibleBin()

	opts := Options{CheckPlausibility: true, HeartRate: &HRRange{Min: 100, Max: 180}}
	res := Filter([]binning.Bin{fast, noHR}, opts)
	// fast fails speed before its heart rate is ever considered
	if res.Excluded.Speed != 1 || res.Excluded.HeartRate != 1 {
		t.Fatalf("unexpected exclusions: %+v", res.Excluded)
	}
}

func TestFilterNoOptionsPassesEverything(t *testing.T) {
	weird := binning.Bin{DistanceM: -5, GradientPct: 90}
	res := Filter([]binning.Bin{weird}, Options{})
	if len(res.Kept) != 1 || res.Excluded.Total != 0 {
		t.Fatalf("no active mode must keep all bins")
	}
}
