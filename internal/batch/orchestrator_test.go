package batch

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hughac94/rungrade-backend/internal/reliability"
)

// gpxTrack renders a synthetic GPX file: n points ~50m apart along the
// equator, 30s apart, climbing 1m per point, heart rate included.
func gpxTrack(n int) []byte {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><gpx xmlns:gpxtpx="g"><trk><trkseg>`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb,
			`<trkpt lat="0" lon="%.6f"><ele>%d</ele><time>2024-05-01T08:%02d:%02dZ</time>`+
				`<extensions><gpxtpx:TrackPointExtension><gpxtpx:hr>%d</gpxtpx:hr></gpxtpx:TrackPointExtension></extensions></trkpt>`,
			float64(i)*0.00045, 100+i, (i*30)/60, (i*30)%60, 140+i%5)
	}
	sb.WriteString(`</trkseg></trk></gpx>`)
	return []byte(sb.String())
}

func TestProcessIsolatesFileFailures(t *testing.T) {
	files := []File{
		{Name: "one.gpx", Data: gpxTrack(10)},
		{Name: "broken.gpx", Data: []byte("<gpx><trk>")},
		{Name: "three.gpx", Data: gpxTrack(10)},
	}

	var calls []int
	report := Process(context.Background(), files, 100, nil, func(processed int, sofar Report) {
		calls = append(calls, processed)
		wantErrs := 0
		if processed >= 2 {
			wantErrs = 1
		}
		if len(sofar.Errors) != wantErrs {
			t.Fatalf("after file %d expected %d errors, got %d", processed, wantErrs, len(sofar.Errors))
		}
	})

	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if len(report.Errors) != 1 || report.Errors[0].File != "broken.gpx" {
		t.Fatalf("expected one error for broken.gpx, got %+v", report.Errors)
	}
	if len(calls) != 3 {
		t.Fatalf("progress callback must fire once per file, got %v", calls)
	}
	if len(report.Analysis.PerDegreeChart) == 0 {
		t.Fatalf("expected pooled analysis over the surviving runs")
	}
}

func TestProcessUnsupportedExtension(t *testing.T) {
	report := Process(context.Background(), []File{{Name: "x.tcx", Data: []byte("x")}}, 100, nil, nil)
	if len(report.Results) != 0 || len(report.Errors) != 1 {
		t.Fatalf("expected a single error, got %+v", report)
	}
}

func TestProcessFillsGradeAdjustedMetrics(t *testing.T) {
	report := Process(context.Background(), []File{{Name: "run.gpx", Data: gpxTrack(10)}}, 100, nil, nil)
	if len(report.Results) != 1 {
		t.Fatalf("expected one result")
	}
	bins := report.Results[0].Bins
	if len(bins) == 0 {
		t.Fatalf("expected bins")
	}
	found := false
	for _, bin := range bins {
		if bin.GradeAdjustedDistanceM != nil {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected grade-adjusted distances after the second pass")
	}
}

func TestProcessAppliesFilter(t *testing.T) {
	opts := &reliability.Options{HeartRate: &reliability.HRRange{Min: 100, Max: 120}}
	report := Process(context.Background(), []File{{Name: "run.gpx", Data: gpxTrack(10)}}, 100, opts, nil)
	res := report.Results[0]
	if res.Excluded == nil {
		t.Fatalf("expected exclusion counts when a filter is active")
	}
	// track heart rates sit in 140-144, all outside the range
	if len(res.Bins) != 0 || res.Excluded.HeartRate == 0 {
		t.Fatalf("expected every bin excluded by heart rate, got %d kept, %+v", len(res.Bins), res.Excluded)
	}
}

func TestProcessCanceledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	files := []File{
		{Name: "one.gpx", Data: gpxTrack(5)},
		{Name: "two.gpx", Data: gpxTrack(5)},
	}
	report := Process(ctx, files, 100, nil, func(processed int, _ Report) {
		cancel()
	})
	if len(report.Results) != 1 {
		t.Fatalf("expected processing to stop after cancellation, got %d results", len(report.Results))
	}
}
