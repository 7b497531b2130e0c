// Package repogate is a repository verification harness: it runs an ordered
// list of checks against a version-controlled working directory and a build
// toolchain, aggregating pass/fail results with per-check abort semantics.
package repogate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/classkit/repogate/logging"
	"github.com/classkit/repogate/metrics"
	"github.com/classkit/repogate/registry"
	"github.com/classkit/repogate/repo"
	"github.com/classkit/repogate/suite"
	"github.com/classkit/repogate/types"
)

// Harness wires the registry, the repository facade, the transcript store
// and the suite runner into one verification run.
type Harness struct {
	config   *Config
	registry *registry.Registry
	result   *suite.Result

	out io.Writer
}

// New creates a harness from the given configuration.
func New(config *Config) (*Harness, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debug("Creating harness with config",
		"workDir", config.WorkDir,
		"checkConfig", config.CheckConfig,
		"logDir", config.LogDir,
		"echoOutput", config.EchoOutput)

	reg, err := registry.NewRegistry(registry.Config{
		Log:             config.Log,
		CheckConfigFile: config.CheckConfig,
		MakeBinary:      config.MakeBinary,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	return &Harness{
		config:   config,
		registry: reg,
		out:      os.Stdout,
	}, nil
}

// Result returns the outcome of the last run, or nil before the first run.
func (h *Harness) Result() *suite.Result {
	return h.result
}

// Run executes the configured checks once. It returns nil when every check
// passed, a CheckFailureError when one or more checks failed or were
// skipped, and a RuntimeError for harness failures.
func (h *Harness) Run(ctx context.Context) error {
	repository, err := repo.Open(h.config.WorkDir)
	if err != nil {
		return NewRuntimeError(err)
	}

	var transcripts *logging.TranscriptLogger
	if h.config.LogDir != "" {
		transcripts, err = logging.NewTranscriptLogger(h.config.LogDir)
		if err != nil {
			return NewRuntimeError(err)
		}
		defer transcripts.Close()
		h.config.Log.Info("Writing transcripts", "dir", transcripts.RunDir())
	}

	rc := &types.RunContext{
		WorkDir:     h.config.WorkDir,
		RepoRoot:    repository.Root(),
		Repo:        repository,
		Transcripts: transcripts,
		EchoOutput:  h.config.EchoOutput,
		Out:         h.out,
		Log:         h.config.Log,
	}

	s := suite.New(rc, h.config.Log)
	for _, c := range h.registry.Checks() {
		if err := s.Register(c); err != nil {
			return NewRuntimeError(err)
		}
	}

	result, runErr := s.Run(ctx)
	h.result = result

	if result != nil {
		h.printResultsTable(result)
		metrics.RecordRun(result.RunID, string(result.Status),
			result.Stats.Total, result.Stats.Passed, result.Stats.Failed, result.Stats.Skipped,
			result.Duration)
		if transcripts != nil {
			if path, err := transcripts.WriteSummary(result.String()); err != nil {
				h.config.Log.Error("Failed to write run summary", "error", err)
			} else {
				h.config.Log.Info("Run summary written", "path", path)
			}
		}
		h.config.Log.Info("Check run completed", "run_id", result.RunID, "status", result.Status)
	}

	if runErr != nil {
		h.config.Log.Error("Runtime error running checks", "error", runErr)
		return NewRuntimeError(runErr)
	}
	if result.Status != types.CheckStatusPass {
		return NewCheckFailureError(result.String())
	}
	return nil
}

// printResultsTable prints one row per check in execution order plus an
// aggregate footer.
func (h *Harness) printResultsTable(result *suite.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(h.out)
	t.SetTitle(fmt.Sprintf("Repository Check Results (%s)", formatDuration(result.Duration)))

	t.AppendHeader(table.Row{
		"Check", "Duration", "Status", "Transcript",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Check", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Transcript", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, c := range result.Checks {
		duration := formatDuration(c.Duration)
		if c.Status == types.CheckStatusSkip {
			duration = "-"
		}
		t.AppendRow(table.Row{
			c.Name,
			duration,
			getResultString(c.Status),
			c.TranscriptPath,
		})
	}

	switch result.Status {
	case types.CheckStatusPass:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		formatDuration(result.Duration),
		fmt.Sprintf("%d passed, %d failed, %d skipped",
			result.Stats.Passed, result.Stats.Failed, result.Stats.Skipped),
		"",
	})

	t.Render()
}

// getResultString returns a short string representing the check result
func getResultString(status types.CheckStatus) string {
	switch status {
	case types.CheckStatusPass:
		return "✓ PASS"
	case types.CheckStatusSkip:
		return "- SKIPPED"
	default:
		return "✗ FAIL"
	}
}

// formatDuration formats the duration to seconds with 1 decimal place
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
