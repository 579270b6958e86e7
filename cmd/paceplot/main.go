// paceplot renders an analysis report (the JSON emitted by /analyze or
// a terminal batch event) as an HTML page: the per-degree pace chart
// and the personal-vs-literature adjustment curves.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hughac94/rungrade-backend/internal/analysis"
)

func main() {
	in := flag.String("in", "", "analysis report JSON (defaults to stdin)")
	out := flag.String("out", "pace.html", "output HTML file")
	flag.Parse()

	report, err := readReport(*in)
	if err != nil {
		log.Fatalf("read report: %v", err)
	}

	page := components.NewPage()
	page.AddCharts(paceChart(report.PerDegreeChart), adjustmentChart(report.GradeAdjustment))

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		log.Fatalf("render charts: %v", err)
	}
	fmt.Println("wrote", *out)
}

func readReport(path string) (analysis.Report, error) {
	var report analysis.Report

	src := os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return report, err
		}
		defer f.Close()
		src = f
	}

	raw, err := io.ReadAll(src)
	if err != nil {
		return report, err
	}

	// the batch report nests the analysis; accept both shapes
	var wrapper struct {
		Analysis *analysis.Report `json:"analysis"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Analysis != nil {
		return *wrapper.Analysis, nil
	}
	err = json.Unmarshal(raw, &report)
	return report, err
}

func paceChart(chart []analysis.DegreeGroup) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Pace by gradient", Subtitle: "distance/time-weighted, min/km"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "gradient %"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "pace min/km"}),
	)

	labels := make([]string, 0, len(chart))
	values := make([]opts.LineData, 0, len(chart))
	for _, g := range chart {
		labels = append(labels, g.Label)
		values = append(values, opts.LineData{Value: g.PaceMinKm})
	}
	line.SetXAxis(labels).AddSeries("pace", values)
	return line
}

func adjustmentChart(entries []analysis.GradeAdjustmentEntry) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Grade adjustment factors", Subtitle: "personal vs literature"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "gradient %"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "pace multiplier"}),
	)

	labels := make([]string, 0, len(entries))
	personal := make([]opts.LineData, 0, len(entries))
	literature := make([]opts.LineData, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.Label)
		personal = append(personal, opts.LineData{Value: e.PersonalFactor})
		literature = append(literature, opts.LineData{Value: e.LiteratureFactor})
	}
	line.SetXAxis(labels).
		AddSeries("personal", personal).
		AddSeries("literature", literature)
	return line
}
