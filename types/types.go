package types

import (
	"time"
)

// CheckStatus represents the possible outcomes of a check execution
type CheckStatus string

const (
	CheckStatusPass CheckStatus = "pass"
	CheckStatusFail CheckStatus = "fail"
	// CheckStatusSkip marks a check that never executed because an earlier
	// check with abort_on_error failed. Skipped checks count against the
	// overall verdict but are reported distinctly from failures.
	CheckStatusSkip CheckStatus = "skip"
)

// CheckResult captures the outcome of a single check invocation.
// Results are appended in execution order and never mutated afterwards.
type CheckResult struct {
	Name           string
	Status         CheckStatus
	Duration       time.Duration
	TranscriptPath string // Path to the captured subprocess output, if any
	Err            error  // Explanation for a failed check; nil on pass/skip
}

// CheckDefinition is one entry of the YAML check list. Type selects the
// check implementation; the remaining fields are type-specific settings.
type CheckDefinition struct {
	Type         string   `yaml:"type"`
	AbortOnError bool     `yaml:"abort_on_error,omitempty"`
	Transcript   string   `yaml:"transcript,omitempty"`
	Files        []string `yaml:"files,omitempty"`
	Rule         string   `yaml:"rule,omitempty"`
	Path         string   `yaml:"path,omitempty"`
	MaxFiles     int      `yaml:"max_files,omitempty"`
}

// SuiteDefinition is the root of the YAML check list. Registration order is
// execution order.
type SuiteDefinition struct {
	Checks []CheckDefinition `yaml:"checks"`
}
