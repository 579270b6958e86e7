package analysis

import (
	"fmt"

	"github.com/hughac94/rungrade-backend/internal/binning"
)

// Run is one activity's contribution to a cross-run analysis.
type Run struct {
	Name    string              `json:"name"`
	Bins    []binning.Bin       `json:"bins"`
	Summary *binning.RunSummary `json:"summary,omitempty"`
}

// KeyKind tags how a gradient key bounds its group.
type KeyKind int

const (
	// Exact is a plain integer gradient (degree rounding).
	Exact KeyKind = iota
	// LowerBound folds everything at or above Value ("≥ 35").
	LowerBound
	// UpperBound folds everything at or below Value ("≤ -35").
	UpperBound
)

// GradientKey identifies a gradient group without resorting to string
// keys: either an exact integer or a fold-in sentinel at one extreme.
type GradientKey struct {
	Kind  KeyKind `json:"kind"`
	Value int     `json:"value"`
}

func ExactKey(v int) GradientKey      { return GradientKey{Kind: Exact, Value: v} }
func LowerBoundKey(v int) GradientKey { return GradientKey{Kind: LowerBound, Value: v} }
func UpperBoundKey(v int) GradientKey { return GradientKey{Kind: UpperBound, Value: v} }

// Less is the total ordering used to present groups: the low-extreme
// sentinel first, the high-extreme sentinel last, exact values in
// between by gradient.
func (k GradientKey) Less(other GradientKey) bool {
	if k.Kind != other.Kind {
		if k.Kind == UpperBound || other.Kind == LowerBound {
			return true
		}
		if k.Kind == LowerBound || other.Kind == UpperBound {
			return false
		}
	}
	return k.Value < other.Value
}

func (k GradientKey) Label() string {
	switch k.Kind {
	case LowerBound:
		return fmt.Sprintf("≥ %d", k.Value)
	case UpperBound:
		return fmt.Sprintf("≤ %d", k.Value)
	default:
		return fmt.Sprintf("%d", k.Value)
	}
}

// RangeBucket is one of the 12 fixed gradient ranges with per-bin pace
// and heart-rate statistics.
type RangeBucket struct {
	Label           string   `json:"label"`
	LowerPct        *float64 `json:"lower_pct,omitempty"` // exclusive, nil = -inf
	UpperPct        *float64 `json:"upper_pct,omitempty"` // inclusive, nil = +inf
	BinCount        int      `json:"bin_count"`
	MeanPaceMinKm   float64  `json:"mean_pace_min_km"`
	MedianPaceMinKm float64  `json:"median_pace_min_km"`
	MeanHeartRate   *float64 `json:"mean_heart_rate,omitempty"`
	MedianHeartRate *float64 `json:"median_heart_rate,omitempty"`
}

// DegreeGroup is one per-integer-degree gradient group carrying a
// single distance/time-weighted pace.
type DegreeGroup struct {
	Key            GradientKey `json:"key"`
	Label          string      `json:"label"`
	BinCount       int         `json:"bin_count"`
	TotalDistanceM float64     `json:"total_distance_m"`
	TotalTimeSec   float64     `json:"total_time_sec"`
	PaceMinKm      float64     `json:"pace_min_km"`
}

// GradeAdjustmentEntry compares a runner's own slowdown at a gradient
// against the literature model's prediction.
type GradeAdjustmentEntry struct {
	Key              GradientKey `json:"key"`
	Label            string      `json:"label"`
	PersonalFactor   float64     `json:"personal_adjustment_factor"`
	LiteratureFactor float64     `json:"literature_adjustment_factor"`
	BinCount         int         `json:"bin_count"`
}

// DeviationEntry is the per-bin adjustment-vs-expectation view used by
// the charts: the observed pace ratio at a gradient against the model's
// expected ratio.
type DeviationEntry struct {
	Key           GradientKey `json:"key"`
	Label         string      `json:"label"`
	ActualRatio   float64     `json:"actual_ratio"`
	ExpectedRatio float64     `json:"expected_ratio"`
	BinCount      int         `json:"bin_count"`
}

// Report bundles the three core cross-run analyses.
type Report struct {
	RangeBuckets    []RangeBucket          `json:"range_buckets"`
	PerDegreeChart  []DegreeGroup          `json:"per_degree_chart"`
	GradeAdjustment []GradeAdjustmentEntry `json:"grade_adjustment"`
}
