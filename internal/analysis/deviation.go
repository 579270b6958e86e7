package analysis

import (
	"sort"

	"github.com/hughac94/rungrade-backend/internal/grade"
	"gonum.org/v1/gonum/stat"
)

// Statistic selects how DeviationView condenses each bucket's per-bin
// ratios.
type Statistic string

const (
	StatMean   Statistic = "mean"
	StatMedian Statistic = "median"
)

// DeviationView buckets individual bins per integer degree (the same
// scheme the grade-adjustment analysis uses) and compares the observed
// pace ratio against the model's expected ratio at that gradient.
func DeviationView(runs []Run, model grade.Model, statistic Statistic) []DeviationEntry {
	base, ok := baselinePace(PerDegreeChart(runs))
	if !ok {
		return nil
	}

	ratios := map[GradientKey][]float64{}
	for _, bin := range pooledBins(runs) {
		if bin.PaceMinKm == nil {
			continue
		}
		pace := *bin.PaceMinKm
		if !isFinite(pace) || pace <= 0 {
			continue
		}
		key := degreeKey(bin.GradientPct)
		ratios[key] = append(ratios[key], pace/base)
	}

	entries := make([]DeviationEntry, 0, len(ratios))
	for key, values := range ratios {
		actual := median(values)
		if statistic == StatMean {
			actual = stat.Mean(values, nil)
		}
		entries = append(entries, DeviationEntry{
			Key:           key,
			Label:         key.Label(),
			ActualRatio:   actual,
			ExpectedRatio: model(float64(key.Value)),
			BinCount:      len(values),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key.Less(entries[j].Key) })
	return entries
}
