// Package checks contains the pluggable verification modules run by the
// suite. Each check produces a boolean verdict; a false verdict is an
// expected outcome and is reported through the run context, while a
// non-nil error is a harness failure that stops the run.
package checks

import (
	"context"
	"path/filepath"

	"github.com/classkit/repogate/types"
)

// Check is a single named verification unit. Implementations are
// constructed once during suite assembly and invoked exactly once per run.
type Check interface {
	// Name is the stable display label used in logs and summaries.
	Name() string
	// AbortOnError reports whether a false verdict should stop the suite.
	AbortOnError() bool
	// Run performs the check. A failing check returns (false, nil) after
	// reporting why through the context; only harness errors (I/O setup,
	// repository backend failures) return a non-nil error.
	Run(ctx context.Context, rc *types.RunContext) (bool, error)
}

// attrs carries the settings shared by every check.
type attrs struct {
	abortOnError bool
}

func (a attrs) AbortOnError() bool {
	return a.abortOnError
}

// defaultPath resolves a configured sub-path, falling back to the working
// directory relative to the repository root.
func defaultPath(rc *types.RunContext, configured string) string {
	if configured != "" {
		return configured
	}
	rel, err := filepath.Rel(rc.RepoRoot, rc.WorkDir)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}
