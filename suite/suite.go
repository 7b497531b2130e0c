// Package suite owns the ordered execution of checks: registration order is
// execution order, one check at a time, with the per-check abort policy
// deciding whether a failure stops the run.
package suite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/classkit/repogate/checks"
	"github.com/classkit/repogate/metrics"
	"github.com/classkit/repogate/types"
)

// Stats tracks check counts for one run.
type Stats struct {
	Total     int
	Passed    int
	Failed    int
	Skipped   int
	StartTime time.Time
	EndTime   time.Time
}

// Result captures the complete outcome of one suite run. Check results
// appear in execution order; checks unreached because of an abort are
// recorded with CheckStatusSkip.
type Result struct {
	Checks    []types.CheckResult
	Status    types.CheckStatus
	Duration  time.Duration
	Stats     Stats
	RunID     string
	Aborted   bool
	AbortedBy string // Name of the check whose failure stopped the run
}

// Suite runs registered checks strictly in order against a shared run
// context. The suite is the sole writer of the results list; checks only
// report messages through the context.
type Suite struct {
	checks  []checks.Check
	rc      *types.RunContext
	log     log.Logger
	tracer  trace.Tracer
	started bool
}

// New creates a suite bound to the given run context.
func New(rc *types.RunContext, logger log.Logger) *Suite {
	if logger == nil {
		logger = log.New()
	}
	return &Suite{
		rc:     rc,
		log:    logger,
		tracer: otel.Tracer("check suite"),
	}
}

// Register appends a check. Valid only before Run is invoked.
func (s *Suite) Register(c checks.Check) error {
	if s.started {
		return fmt.Errorf("cannot register %s: suite already running", c.Name())
	}
	s.checks = append(s.checks, c)
	return nil
}

// Run executes the registered checks in order. A false verdict from a check
// with AbortOnError stops the loop and marks the remaining checks skipped.
// The returned error is non-nil only for harness errors; in that case the
// partial result carries everything recorded so far.
func (s *Suite) Run(ctx context.Context) (*Result, error) {
	s.started = true
	if len(s.checks) == 0 {
		return nil, fmt.Errorf("no checks registered")
	}

	runID := uuid.New().String()
	if s.rc.Transcripts != nil {
		runID = s.rc.Transcripts.RunID()
	}

	start := time.Now()
	result := &Result{
		RunID: runID,
		Stats: Stats{Total: len(s.checks), StartTime: start},
	}
	s.log.Debug("Running all checks", "run_id", runID, "count", len(s.checks))

	for i, c := range s.checks {
		s.rc.Printf("")
		s.rc.Printf("===== %s =====", c.Name())

		checkStart := time.Now()
		ok, err := s.runCheck(ctx, c)
		duration := time.Since(checkStart)

		if err != nil {
			// Harness error: record what we have and propagate. This is
			// never downgraded to a check failure.
			s.rc.Errorf("Harness error in %s: %v", c.Name(), err)
			result.Checks = append(result.Checks, types.CheckResult{
				Name:           c.Name(),
				Status:         types.CheckStatusFail,
				Duration:       duration,
				TranscriptPath: s.rc.TakeTranscriptPath(),
				Err:            err,
			})
			result.Stats.Failed++
			// The checks after the erroring one never ran; record them as
			// skipped so the summary still covers the full check list.
			for _, skipped := range s.checks[i+1:] {
				result.Checks = append(result.Checks, types.CheckResult{
					Name:   skipped.Name(),
					Status: types.CheckStatusSkip,
				})
				result.Stats.Skipped++
				metrics.RecordCheck(runID, skipped.Name(), string(types.CheckStatusSkip))
			}
			result.Status = types.CheckStatusFail
			result.Duration = time.Since(start)
			result.Stats.EndTime = time.Now()
			metrics.RecordErrorDetails(c.Name(), err)
			return result, fmt.Errorf("check %s: %w", c.Name(), err)
		}

		cr := types.CheckResult{
			Name:           c.Name(),
			Status:         types.CheckStatusPass,
			Duration:       duration,
			TranscriptPath: s.rc.TakeTranscriptPath(),
		}
		if !ok {
			cr.Status = types.CheckStatusFail
			cr.Err = fmt.Errorf("check failed")
			result.Stats.Failed++
		} else {
			result.Stats.Passed++
		}
		result.Checks = append(result.Checks, cr)
		metrics.RecordCheck(runID, c.Name(), string(cr.Status))
		s.log.Info("Check completed", "check", c.Name(), "status", cr.Status, "duration", duration)

		if !ok && c.AbortOnError() {
			result.Aborted = true
			result.AbortedBy = c.Name()
			s.rc.Errorf("Check %s failed with abort_on_error set; skipping remaining checks", c.Name())
			for _, skipped := range s.checks[i+1:] {
				result.Checks = append(result.Checks, types.CheckResult{
					Name:   skipped.Name(),
					Status: types.CheckStatusSkip,
				})
				result.Stats.Skipped++
				metrics.RecordCheck(runID, skipped.Name(), string(types.CheckStatusSkip))
			}
			break
		}
	}

	result.Duration = time.Since(start)
	result.Stats.EndTime = time.Now()
	result.Status = determineRunStatus(result)
	return result, nil
}

// runCheck invokes one check inside a tracing span, converting panics into
// harness errors.
func (s *Suite) runCheck(ctx context.Context, c checks.Check) (ok bool, err error) {
	ctx, span := s.tracer.Start(ctx, fmt.Sprintf("check %s", c.Name()))
	defer span.End()

	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("Panic in check", "check", c.Name(), "error", rec)
			ok = false
			err = fmt.Errorf("runtime error: %v", rec)
		}
	}()
	return c.Run(ctx, s.rc)
}

// determineRunStatus derives the overall status. Skipped checks never
// executed, so the run cannot be a pass.
func determineRunStatus(result *Result) types.CheckStatus {
	if result.Stats.Failed > 0 || result.Stats.Skipped > 0 {
		return types.CheckStatusFail
	}
	return types.CheckStatusPass
}

// String returns a formatted summary: one line per check in execution
// order, then the aggregate verdict.
func (r *Result) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Check Run Results (%s):\n", formatDuration(r.Duration)))
	b.WriteString(fmt.Sprintf("Total: %d, Passed: %d, Failed: %d, Skipped: %d\n",
		r.Stats.Total, r.Stats.Passed, r.Stats.Failed, r.Stats.Skipped))
	for _, c := range r.Checks {
		switch c.Status {
		case types.CheckStatusPass:
			b.WriteString(fmt.Sprintf("  %s: PASS (%s)\n", c.Name, formatDuration(c.Duration)))
		case types.CheckStatusSkip:
			b.WriteString(fmt.Sprintf("  %s: SKIPPED\n", c.Name))
		default:
			b.WriteString(fmt.Sprintf("  %s: FAIL (%s)\n", c.Name, formatDuration(c.Duration)))
		}
	}
	if r.Aborted {
		b.WriteString(fmt.Sprintf("Run aborted by %s\n", r.AbortedBy))
	}
	if r.Status == types.CheckStatusPass {
		b.WriteString("Overall: PASS\n")
	} else {
		b.WriteString("Overall: FAIL\n")
	}
	return b.String()
}

// formatDuration formats the duration to seconds with 1 decimal place
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
