package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/crumbler/internal/foundation/errors"
)

// Outcome is the final state of a run.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning"
	OutcomeFailed  Outcome = "failed"
)

// FileStatus is the result of processing one file.
type FileStatus string

const (
	StatusConverted FileStatus = "converted"
	StatusCopied    FileStatus = "copied"
	StatusFailed    FileStatus = "failed"
)

// FileResult records what happened to one source file.
type FileResult struct {
	Source      string     `json:"source"`
	Output      string     `json:"output,omitempty"`
	Kind        string     `json:"kind"`
	Status      FileStatus `json:"status"`
	Title       string     `json:"title,omitempty"`
	Fingerprint string     `json:"fingerprint,omitempty"`
	Breadcrumbs int        `json:"breadcrumbs,omitempty"`
	Rewritten   int        `json:"rewritten,omitempty"`
	Unresolved  []string   `json:"unresolved,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Report summarizes a run. Per-file failures are collected in Errors; the run
// keeps going after them.
type Report struct {
	SchemaVersion  int                      `json:"schema_version"`
	RunID          string                   `json:"run_id"`
	Mode           string                   `json:"mode"`
	SourceRoot     string                   `json:"source_root"`
	OutputDir      string                   `json:"output_dir"`
	Start          time.Time                `json:"start"`
	End            time.Time                `json:"end"`
	Directories    int                      `json:"directories"`
	Indexed        int                      `json:"indexed_directories"`
	Documents      int                      `json:"documents"`
	Converted      int                      `json:"converted"`
	Assets         int                      `json:"assets"`
	Copied         int                      `json:"copied"`
	Failed         int                      `json:"failed"`
	Files          []FileResult             `json:"files"`
	Errors         []error                  `json:"-"`
	Warnings       []string                 `json:"warnings,omitempty"`
	StageDurations map[string]time.Duration `json:"-"`
	Outcome        Outcome                  `json:"outcome"`
}

func newReport(runID string) *Report {
	return &Report{
		SchemaVersion:  1,
		RunID:          runID,
		Start:          time.Now(),
		StageDurations: make(map[string]time.Duration),
	}
}

func (r *Report) addFile(fr FileResult, err error) {
	if err != nil {
		fr.Status = StatusFailed
		fr.Error = err.Error()
		r.Errors = append(r.Errors, err)
		r.Failed++
	}
	switch fr.Status {
	case StatusConverted:
		r.Converted++
	case StatusCopied:
		r.Copied++
	}
	r.Files = append(r.Files, fr)
}

func (r *Report) finish() {
	r.End = time.Now()
	r.deriveOutcome()
}

func (r *Report) deriveOutcome() {
	switch {
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("documents=%d converted=%d assets=%d copied=%d failed=%d warnings=%d duration=%s outcome=%s",
		r.Documents, r.Converted, r.Assets, r.Copied, r.Failed, len(r.Warnings), r.Duration().Truncate(time.Millisecond), r.Outcome)
}

// ExitCode returns 0 unless some file failed, in which case it returns the
// exit code of the first failure.
func (r *Report) ExitCode() int {
	if len(r.Errors) == 0 {
		return 0
	}
	return errors.ExitCode(r.Errors[0])
}

type reportJSON struct {
	*Report
	DurationMS     int64            `json:"duration_ms"`
	StageDurations map[string]int64 `json:"stage_durations_ms"`
}

// Persist writes the report as indented JSON to path atomically.
func (r *Report) Persist(path string) error {
	stages := make(map[string]int64, len(r.StageDurations))
	for k, v := range r.StageDurations {
		stages[k] = v.Milliseconds()
	}
	data, err := json.MarshalIndent(reportJSON{Report: r, DurationMS: r.Duration().Milliseconds(), StageDurations: stages}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure report directory: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'), 0o644)
}
