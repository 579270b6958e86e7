// Package reliability drops bins whose derived metrics are physically
// implausible or lack qualifying heart-rate data, keeping a count of
// why each bin was rejected.
package reliability

import "github.com/hughac94/rungrade-backend/internal/binning"

const (
	minSpeedKmh    = 1.0
	maxSpeedKmh    = 30.0
	maxGradientPct = 30.0
	minDurationSec = 1.0
)

type HRRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Options struct {
	CheckPlausibility bool     `json:"check_plausibility"`
	HeartRate         *HRRange `json:"heart_rate,omitempty"`
}

// Exclusions counts rejected bins per reason. A bin increments exactly
// one named counter; the checks run in a fixed order and the first
// match wins.
type Exclusions struct {
	Speed     int `json:"speed"`
	Gradient  int `json:"gradient"`
	Duration  int `json:"duration"`
	Distance  int `json:"distance"`
	HeartRate int `json:"heart_rate"`
	Total     int `json:"total"`
}

type Result struct {
	Kept     []binning.Bin `json:"kept"`
	Excluded Exclusions    `json:"excluded"`
}

// Filter applies the opted-in checks to each bin. Kept bins pass
// through unchanged, in order.
func Filter(bins []binning.Bin, opts Options) Result {
	result := Result{Kept: make([]binning.Bin, 0, len(bins))}

	for _, bin := range bins {
		if counter := excludeReason(bin, opts, &result.Excluded); counter != nil {
			*counter++
			result.Excluded.Total++
			continue
		}
		result.Kept = append(result.Kept, bin)
	}
	return result
}

// excludeReason returns the counter for the first failed check, or nil
// when the bin passes.
func excludeReason(bin binning.Bin, opts Options, ex *Exclusions) *int {
	if opts.CheckPlausibility {
		if speed, ok := speedKmh(bin); ok && (speed < minSpeedKmh || speed > maxSpeedKmh) {
			return &ex.Speed
		}
		if bin.GradientPct < -maxGradientPct || bin.GradientPct > maxGradientPct {
			return &ex.Gradient
		}
		if bin.DurationSec != nil && *bin.DurationSec < minDurationSec {
			return &ex.Duration
		}
		if bin.DistanceM <= 0 {
			return &ex.Distance
		}
	}
	if opts.HeartRate != nil {
		if bin.AvgHeartRate == nil {
			return &ex.HeartRate
		}
		if hr := *bin.AvgHeartRate; hr < opts.HeartRate.Min || hr > opts.HeartRate.Max {
			return &ex.HeartRate
		}
	}
	return nil
}

// speedKmh prefers the device-reported speed when the source format
// recorded one, falling back to the derived velocity.
func speedKmh(bin binning.Bin) (float64, bool) {
	if bin.AvgSpeedKmh != nil {
		return *bin.AvgSpeedKmh, true
	}
	if bin.VelocityMps != nil {
		return *bin.VelocityMps * 3.6, true
	}
	return 0, false
}
