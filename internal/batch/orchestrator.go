// Package batch drives a set of uploaded activities through
// normalization, binning, filtering, and cross-run analysis, one file
// at a time, streaming progress and isolating per-file failures.
package batch

import (
	"context"

	"github.com/hughac94/rungrade-backend/internal/analysis"
	"github.com/hughac94/rungrade-backend/internal/binning"
	"github.com/hughac94/rungrade-backend/internal/grade"
	"github.com/hughac94/rungrade-backend/internal/normalize"
	"github.com/hughac94/rungrade-backend/internal/reliability"
)

// Process is the synchronous mode: the whole batch in one call, one
// aggregate report out. Files run in submission order with no fan-out
// so memory held by raw buffers stays bounded and progress stays
// monotonic. A canceled context stops before the next file; onFile,
// when non-nil, is called after every file whether it succeeded or not,
// with the cumulative results and errors so far.
func Process(ctx context.Context, files []File, binLengthM float64, filter *reliability.Options, onFile func(processed int, sofar Report)) Report {
	report := Report{
		Results: []Result{},
		Errors:  []FileError{},
	}

	for i, f := range files {
		if ctx.Err() != nil {
			break
		}

		if result, err := processFile(f, binLengthM, filter); err != nil {
			report.Errors = append(report.Errors, FileError{File: f.Name, Message: err.Error()})
		} else {
			report.Results = append(report.Results, result)
		}

		if onFile != nil {
			onFile(i+1, report)
		}
	}

	runs := make([]analysis.Run, 0, len(report.Results))
	for _, res := range report.Results {
		runs = append(runs, analysis.Run{Name: res.File, Bins: res.Bins, Summary: res.Summary})
	}
	report.Analysis = analysis.Analyze(runs)
	return report
}

func processFile(f File, binLengthM float64, filter *reliability.Options) (Result, error) {
	points, err := normalize.File(f.Name, f.Data)
	if err != nil {
		return Result{}, err
	}

	// first pass establishes the run's own flat-equivalent velocity,
	// the second pass uses it to fill the grade-adjusted metrics
	bins := binning.Split(points, binLengthM, nil, 0)
	summary := binning.Summarize(bins)
	if summary != nil && summary.TotalTimeSec > 0 {
		refVelocity := summary.TotalDistanceKm * 1000 / summary.TotalTimeSec
		bins = binning.Split(points, binLengthM, grade.Default(), refVelocity)
	}

	result := Result{File: f.Name, Bins: bins, Summary: summary}
	if filter != nil {
		filtered := reliability.Filter(bins, *filter)
		result.Bins = filtered.Kept
		result.Excluded = &filtered.Excluded
	}
	return result, nil
}
