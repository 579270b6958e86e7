package binning

import (
	"math"

	"github.com/hughac94/rungrade-backend/internal/grade"
	"github.com/hughac94/rungrade-backend/internal/normalize"
	"github.com/hughac94/rungrade-backend/internal/shared/geo"
)

// Split cuts an ordered point sequence into distance bins of at least
// binLengthM meters. A trailing partial segment becomes a final
// remainder bin so consecutive bins always tile the full index range.
//
// model and refVelocityMps are optional: pass a nil model or a
// non-positive reference velocity to skip grade adjustment.
func Split(points []normalize.Point, binLengthM float64, model grade.Model, refVelocityMps float64) []Bin {
	if len(points) < 2 || binLengthM <= 0 {
		return nil
	}

	var bins []Bin
	accumulated := 0.0
	binStart := 0

	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		accumulated += geo.HaversineM(prev.Lat, prev.Lon, cur.Lat, cur.Lon)

		if accumulated >= binLengthM {
			bins = append(bins, makeBin(points, binStart, i, accumulated, model, refVelocityMps))
			accumulated = 0
			binStart = i
		}
	}

	// remainder: anything past the last closed bin, even when the
	// leftover distance is 0, so index coverage never has a gap
	if binStart < len(points)-1 {
		bins = append(bins, makeBin(points, binStart, len(points)-1, accumulated, model, refVelocityMps))
	}
	return bins
}

func makeBin(points []normalize.Point, start, end int, distanceM float64, model grade.Model, refVelocityMps float64) Bin {
	first, last := points[start], points[end]

	bin := Bin{
		DistanceM:        distanceM,
		ElevationChangeM: last.Elevation - first.Elevation,
		StartIndex:       start,
		EndIndex:         end,
	}
	if distanceM != 0 {
		bin.GradientPct = bin.ElevationChangeM / distanceM * 100
	}

	if first.Time != nil && last.Time != nil {
		elapsed := last.Time.Sub(*first.Time).Seconds()
		if isFinite(elapsed) && elapsed > 0 {
			bin.DurationSec = &elapsed
			v := distanceM / elapsed
			bin.VelocityMps = &v
			if distanceM > 0 {
				pace := (elapsed / 60) / (distanceM / 1000)
				bin.PaceMinKm = &pace
			}
		}
		st, et := *first.Time, *last.Time
		bin.StartTime = &st
		bin.EndTime = &et
	}

	aggregateHeartRate(&bin, points[start:end+1])
	aggregateSpeed(&bin, points[start:end+1])

	if model != nil && refVelocityMps > 0 {
		factor := model(grade.Clamp(bin.GradientPct))
		if isFinite(factor) && factor > 0 {
			bin.AdjustedDurationSec = distanceM * factor / refVelocityMps
			gad := distanceM * factor
			bin.GradeAdjustedDistanceM = &gad
		}
	}
	return bin
}

func aggregateHeartRate(bin *Bin, points []normalize.Point) {
	sum, count := 0, 0
	max, min := 0, 0
	for _, p := range points {
		if p.HeartRate == nil {
			continue
		}
		hr := *p.HeartRate
		if count == 0 {
			max, min = hr, hr
		} else {
			if hr > max {
				max = hr
			}
			if hr < min {
				min = hr
			}
		}
		sum += hr
		count++
	}
	if count == 0 {
		return
	}
	avg := int(math.Round(float64(sum) / float64(count)))
	bin.AvgHeartRate = &avg
	bin.MaxHeartRate = &max
	bin.MinHeartRate = &min
	bin.HRSamples = count
}

func aggregateSpeed(bin *Bin, points []normalize.Point) {
	sum, count := 0.0, 0
	for _, p := range points {
		if p.SpeedKmh == nil || !isFinite(*p.SpeedKmh) {
			continue
		}
		sum += *p.SpeedKmh
		count++
	}
	if count > 0 {
		avg := sum / float64(count)
		bin.AvgSpeedKmh = &avg
	}
}

// Summarize rolls one activity's bins into totals. Returns nil when no
// bin carries a positive distance.
func Summarize(bins []Bin) *RunSummary {
	var (
		distanceM float64
		timeSec   float64
		gainM     float64
		hrSum     int
		hrBins    int
		maxHR     int
		validBins int
	)

	for _, bin := range bins {
		if bin.DistanceM <= 0 {
			continue
		}
		validBins++
		distanceM += bin.DistanceM
		if bin.DurationSec != nil {
			timeSec += *bin.DurationSec
		}
		if bin.ElevationChangeM > 0 {
			gainM += bin.ElevationChangeM
		}
		if bin.AvgHeartRate != nil {
			hrSum += *bin.AvgHeartRate
			hrBins++
		}
		if bin.MaxHeartRate != nil && *bin.MaxHeartRate > maxHR {
			maxHR = *bin.MaxHeartRate
		}
	}
	if validBins == 0 {
		return nil
	}

	summary := &RunSummary{
		TotalDistanceKm:   distanceM / 1000,
		TotalTimeSec:      timeSec,
		ElevationGainM:    gainM,
		BinCount:          validBins,
		HeartRateCoverage: float64(hrBins) / float64(validBins),
	}
	if timeSec > 0 && distanceM > 0 {
		pace := (timeSec / 60) / (distanceM / 1000)
		summary.AvgPaceMinKm = &pace
	}
	if hrBins > 0 {
		avg := int(math.Round(float64(hrSum) / float64(hrBins)))
		summary.AvgHeartRate = &avg
		summary.MaxHeartRate = &maxHR
	}
	return summary
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
