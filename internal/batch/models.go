package batch

import (
	"github.com/hughac94/rungrade-backend/internal/analysis"
	"github.com/hughac94/rungrade-backend/internal/binning"
	"github.com/hughac94/rungrade-backend/internal/reliability"
)

// File is one uploaded activity held in memory for the duration of a
// batch job.
type File struct {
	Name string
	Data []byte
}

// Result is one successfully processed activity.
type Result struct {
	File     string                  `json:"file"`
	Bins     []binning.Bin           `json:"bins"`
	Summary  *binning.RunSummary     `json:"summary,omitempty"`
	Excluded *reliability.Exclusions `json:"excluded,omitempty"`
}

// FileError records one activity that could not be processed. It never
// aborts the batch.
type FileError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// Report is the aggregate outcome of a whole batch.
type Report struct {
	Results  []Result        `json:"results"`
	Errors   []FileError     `json:"errors"`
	Analysis analysis.Report `json:"analysis"`
}

// Event is one message on a job's stream: a progress update after each
// file, one terminal complete, or a request-level error.
type Event struct {
	Type      string           `json:"type"` // progress | complete | error
	Processed int              `json:"processed,omitempty"`
	Total     int              `json:"total,omitempty"`
	Percent   float64          `json:"percent,omitempty"`
	Results   []Result         `json:"results,omitempty"`
	Errors    []FileError      `json:"errors,omitempty"`
	Analysis  *analysis.Report `json:"analysis,omitempty"`
	Message   string           `json:"message,omitempty"`
}
