// Package analysis pools distance bins from many runs into gradient
// buckets and derives pace and heart-rate statistics, including the
// personal-vs-literature grade-adjustment comparison.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/hughac94/rungrade-backend/internal/binning"
	"github.com/hughac94/rungrade-backend/internal/grade"
)

// rangeEdges are the inner boundaries of the 12 fixed buckets:
// (-inf,-25], (-25,-20], ... (20,25], (25,+inf).
var rangeEdges = []float64{-25, -20, -15, -10, -5, 0, 5, 10, 15, 20, 25}

const sentinelGradient = 35

// Analyze runs the three core cross-run analyses over the pooled bins.
func Analyze(runs []Run) Report {
	return Report{
		RangeBuckets:    RangeBuckets(runs),
		PerDegreeChart:  PerDegreeChart(runs),
		GradeAdjustment: GradeAdjustment(runs, grade.Literature()),
	}
}

func pooledBins(runs []Run) []binning.Bin {
	var bins []binning.Bin
	for _, run := range runs {
		bins = append(bins, run.Bins...)
	}
	return bins
}

// RangeBuckets partitions the pooled bins into the fixed gradient
// ranges and reports the arithmetic mean and median of per-bin pace,
// plus heart rate when present. Empty buckets are omitted.
func RangeBuckets(runs []Run) []RangeBucket {
	type acc struct {
		paces []float64
		hrs   []float64
	}
	accs := make([]acc, len(rangeEdges)+1)

	for _, bin := range pooledBins(runs) {
		if bin.PaceMinKm == nil {
			continue
		}
		pace := *bin.PaceMinKm
		if !isFinite(pace) || pace <= 0 {
			continue
		}
		idx := rangeIndex(bin.GradientPct)
		accs[idx].paces = append(accs[idx].paces, pace)
		if bin.AvgHeartRate != nil {
			accs[idx].hrs = append(accs[idx].hrs, float64(*bin.AvgHeartRate))
		}
	}

	var buckets []RangeBucket
	for i, a := range accs {
		if len(a.paces) == 0 {
			continue
		}
		bucket := RangeBucket{
			Label:           rangeLabel(i),
			BinCount:        len(a.paces),
			MeanPaceMinKm:   stat.Mean(a.paces, nil),
			MedianPaceMinKm: median(a.paces),
		}
		if lo := rangeLower(i); lo != nil {
			bucket.LowerPct = lo
		}
		if hi := rangeUpper(i); hi != nil {
			bucket.UpperPct = hi
		}
		if len(a.hrs) > 0 {
			mean := stat.Mean(a.hrs, nil)
			med := median(a.hrs)
			bucket.MeanHeartRate = &mean
			bucket.MedianHeartRate = &med
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

// rangeIndex maps a gradient to its (lo, hi] bucket.
func rangeIndex(gradientPct float64) int {
	for i, edge := range rangeEdges {
		if gradientPct <= edge {
			return i
		}
	}
	return len(rangeEdges)
}

func rangeLower(i int) *float64 {
	if i == 0 {
		return nil
	}
	v := rangeEdges[i-1]
	return &v
}

func rangeUpper(i int) *float64 {
	if i == len(rangeEdges) {
		return nil
	}
	v := rangeEdges[i]
	return &v
}

func rangeLabel(i int) string {
	switch i {
	case 0:
		return "≤ -25%"
	case len(rangeEdges):
		return "> 25%"
	default:
		return degreeRangeLabel(rangeEdges[i-1], rangeEdges[i])
	}
}

// PerDegreeChart groups bins by gradient rounded to the nearest integer
// (±35 folded into sentinel extremes) and derives one distance/time
// weighted pace per group. This is deliberately not the mean of the
// per-bin paces that RangeBuckets reports.
func PerDegreeChart(runs []Run) []DegreeGroup {
	groups := map[GradientKey]*DegreeGroup{}

	for _, bin := range pooledBins(runs) {
		if bin.DurationSec == nil || bin.DistanceM <= 0 {
			continue
		}
		key := degreeKey(bin.GradientPct)
		g, ok := groups[key]
		if !ok {
			g = &DegreeGroup{Key: key, Label: key.Label()}
			groups[key] = g
		}
		g.BinCount++
		g.TotalDistanceM += bin.DistanceM
		g.TotalTimeSec += *bin.DurationSec
	}

	chart := make([]DegreeGroup, 0, len(groups))
	for _, g := range groups {
		if g.TotalDistanceM <= 0 || g.TotalTimeSec <= 0 {
			continue
		}
		g.PaceMinKm = (g.TotalTimeSec / 60) / (g.TotalDistanceM / 1000)
		chart = append(chart, *g)
	}
	sort.Slice(chart, func(i, j int) bool { return chart[i].Key.Less(chart[j].Key) })
	return chart
}

func degreeKey(gradientPct float64) GradientKey {
	if gradientPct <= -sentinelGradient {
		return UpperBoundKey(-sentinelGradient)
	}
	if gradientPct >= sentinelGradient {
		return LowerBoundKey(sentinelGradient)
	}
	return ExactKey(int(math.Round(gradientPct)))
}

// GradeAdjustment derives the personal adjustment factor for every
// per-degree group against a baseline flat pace, alongside the
// literature model's factor at that gradient.
func GradeAdjustment(runs []Run, model grade.Model) []GradeAdjustmentEntry {
	chart := PerDegreeChart(runs)
	base, ok := baselinePace(chart)
	if !ok {
		return nil
	}

	entries := make([]GradeAdjustmentEntry, 0, len(chart))
	for _, g := range chart {
		entries = append(entries, GradeAdjustmentEntry{
			Key:              g.Key,
			Label:            g.Label,
			PersonalFactor:   g.PaceMinKm / base,
			LiteratureFactor: model(float64(g.Key.Value)),
			BinCount:         g.BinCount,
		})
	}
	return entries
}

// baselinePace finds the flat reference pace: the gradient-0 group,
// else the nearest group within ±2 degrees (smaller magnitude first,
// downhill checked before uphill on ties), else the mean of all group
// paces.
func baselinePace(chart []DegreeGroup) (float64, bool) {
	if len(chart) == 0 {
		return 0, false
	}

	byValue := map[GradientKey]float64{}
	for _, g := range chart {
		byValue[g.Key] = g.PaceMinKm
	}

	for _, v := range []int{0, -1, 1, -2, 2} {
		if pace, ok := byValue[ExactKey(v)]; ok && pace > 0 {
			return pace, true
		}
	}

	paces := make([]float64, 0, len(chart))
	for _, g := range chart {
		paces = append(paces, g.PaceMinKm)
	}
	mean := stat.Mean(paces, nil)
	return mean, mean > 0
}

// median returns the middle value, or the average of the two middle
// values for even counts. The input is not modified.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func degreeRangeLabel(lo, hi float64) string {
	return fmt.Sprintf("%g to %g%%", lo, hi)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
