package pkgops

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotConfirmed is attached to a result whose command ran but whose
// effect could not be observed afterwards
var ErrNotConfirmed = errors.New("operation not confirmed")

// Action names a mutating operation
type Action string

const (
	ActionInstall   Action = "install"
	ActionUninstall Action = "uninstall"
	ActionUpgrade   Action = "upgrade"
)

// OperationResult is the outcome of one install, uninstall or upgrade
type OperationResult struct {
	RunID            uuid.UUID     `json:"run_id"`
	TargetID         string        `json:"target_id"`
	Action           Action        `json:"action"`
	Succeeded        bool          `json:"succeeded"`
	Skipped          bool          `json:"skipped"` // nothing to do, tool not invoked
	AttemptedRetries int           `json:"attempted_retries"`
	RawOutput        string        `json:"-"`
	ExitCode         int           `json:"exit_code"`
	Duration         time.Duration `json:"duration"`
	Err              error         `json:"-"`

	start time.Time
}

// Tag is the short run identifier prefixed to log lines
func (r *OperationResult) Tag() string {
	return r.RunID.String()[:8]
}

// BatchSummary aggregates the results of a sequence of operations
type BatchSummary struct {
	SuccessCount int               `json:"success_count"`
	FailureCount int               `json:"failure_count"`
	Results      []OperationResult `json:"results"`
}

// Add appends a result and updates the counts
func (s *BatchSummary) Add(r OperationResult) {
	if r.Succeeded {
		s.SuccessCount++
	} else {
		s.FailureCount++
	}
	s.Results = append(s.Results, r)
}

// Merge appends every result of other
func (s *BatchSummary) Merge(other BatchSummary) {
	for _, r := range other.Results {
		s.Add(r)
	}
}

// OK reports whether no operation failed
func (s BatchSummary) OK() bool {
	return s.FailureCount == 0
}

// Failed returns the failed results in order
func (s BatchSummary) Failed() []OperationResult {
	var out []OperationResult
	for _, r := range s.Results {
		if !r.Succeeded {
			out = append(out, r)
		}
	}
	return out
}
