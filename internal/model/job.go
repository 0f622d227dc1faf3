package model

import (
	"path/filepath"
	"strings"
	"time"
)

// GenerationJob represents a single generation job. Exactly one job may be
// in flight at a time; ownership of status transitions is exclusive to the
// generate service.
type GenerationJob struct {
	ID          string
	Request     GenerationRequest
	Status      JobStatus
	ResultPath  string // path to the stored image, set on completion
	LastError   string // last error message if any
	StartedAt   time.Time
	CompletedAt time.Time
}

// GetDisplayTitle returns a short label for the job: the stored filename if
// available, otherwise a truncated prompt.
func (gj *GenerationJob) GetDisplayTitle() string {
	if gj.ResultPath != "" {
		return filepath.Base(gj.ResultPath)
	}

	prompt := strings.TrimSpace(gj.Request.Prompt)
	if len(prompt) > 60 {
		return prompt[:57] + "..."
	}
	return prompt
}

// Elapsed returns the wall-clock duration of the job so far, or the total
// duration once the job is terminal.
func (gj *GenerationJob) Elapsed() time.Duration {
	if gj.StartedAt.IsZero() {
		return 0
	}
	if gj.CompletedAt.IsZero() {
		return time.Since(gj.StartedAt)
	}
	return gj.CompletedAt.Sub(gj.StartedAt)
}
