package binning

import "time"

// Bin is one fixed-distance segment of a run. Optional metrics are nil
// when the underlying points lack the data to derive them; they are
// never coerced to 0 or NaN.
type Bin struct {
	DistanceM        float64 `json:"distance_m"`
	ElevationChangeM float64 `json:"elevation_change_m"`
	GradientPct      float64 `json:"gradient_pct"`

	DurationSec *float64 `json:"duration_sec,omitempty"`
	VelocityMps *float64 `json:"velocity_mps,omitempty"`
	PaceMinKm   *float64 `json:"pace_min_km,omitempty"`

	// AdjustedDurationSec stays 0 when no grade model or reference
	// velocity was supplied, or the factor came out non-positive.
	AdjustedDurationSec    float64  `json:"adjusted_duration_sec"`
	GradeAdjustedDistanceM *float64 `json:"grade_adjusted_distance_m,omitempty"`

	StartIndex int `json:"start_index"`
	EndIndex   int `json:"end_index"`

	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	AvgHeartRate *int `json:"avg_heart_rate,omitempty"`
	MaxHeartRate *int `json:"max_heart_rate,omitempty"`
	MinHeartRate *int `json:"min_heart_rate,omitempty"`
	HRSamples    int  `json:"hr_sample_count"`

	// AvgSpeedKmh carries the device-reported speed averaged over the
	// bin, when the source format records one (FIT does, GPX rarely).
	AvgSpeedKmh *float64 `json:"avg_speed_kmh,omitempty"`
}

// RunSummary aggregates one activity's bins.
type RunSummary struct {
	TotalDistanceKm   float64  `json:"total_distance_km"`
	TotalTimeSec      float64  `json:"total_time_sec"`
	ElevationGainM    float64  `json:"elevation_gain_m"`
	AvgPaceMinKm      *float64 `json:"avg_pace_min_km,omitempty"`
	AvgHeartRate      *int     `json:"avg_heart_rate,omitempty"`
	MaxHeartRate      *int     `json:"max_heart_rate,omitempty"`
	HeartRateCoverage float64  `json:"heart_rate_coverage"`
	BinCount          int      `json:"bin_count"`
}
