package repogate

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classkit/repogate/types"
)

// initRepo creates a repository with one committed README.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := r.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# readme\n"), 0644))
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	_, err = wt.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func writeChecks(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newHarness(t *testing.T, cfg *Config) *Harness {
	t.Helper()
	if cfg.Log == nil {
		cfg.Log = log.New()
	}
	h, err := New(cfg)
	require.NoError(t, err)
	h.out = io.Discard
	return h
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestNewInvalidCheckConfig(t *testing.T) {
	_, err := New(&Config{
		CheckConfig: filepath.Join(t.TempDir(), "missing.yaml"),
		Log:         log.New(),
	})
	require.Error(t, err)
}

func TestRunAllChecksPass(t *testing.T) {
	dir := initRepo(t)
	checks := writeChecks(t, `
checks:
  - type: commit_log
  - type: file_exists
    files:
      - README.md
  - type: untracked
  - type: uncommitted
  - type: max_tracked_files
    max_files: 5
`)
	h := newHarness(t, &Config{WorkDir: dir, CheckConfig: checks})

	err := h.Run(context.Background())
	require.NoError(t, err)

	result := h.Result()
	require.NotNil(t, result)
	assert.Equal(t, types.CheckStatusPass, result.Status)
	assert.Equal(t, 5, result.Stats.Passed)
}

func TestRunFailingCheckIsCheckFailure(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("tmp\n"), 0644))
	checks := writeChecks(t, `
checks:
  - type: untracked
  - type: file_exists
    files:
      - README.md
`)
	h := newHarness(t, &Config{WorkDir: dir, CheckConfig: checks})

	err := h.Run(context.Background())
	require.Error(t, err)
	assert.True(t, IsCheckFailureError(err))
	assert.False(t, IsRuntimeError(err))

	result := h.Result()
	require.NotNil(t, result)
	assert.Equal(t, types.CheckStatusFail, result.Status)
	assert.Equal(t, 1, result.Stats.Failed)
	assert.Equal(t, 1, result.Stats.Passed, "later checks still run without abort_on_error")
}

func TestRunAbortSkipsRemainingChecks(t *testing.T) {
	dir := initRepo(t)
	checks := writeChecks(t, `
checks:
  - type: file_exists
    files:
      - missing.bit
    abort_on_error: true
  - type: untracked
`)
	h := newHarness(t, &Config{WorkDir: dir, CheckConfig: checks})

	err := h.Run(context.Background())
	require.Error(t, err)
	assert.True(t, IsCheckFailureError(err))

	result := h.Result()
	require.NotNil(t, result)
	assert.True(t, result.Aborted)
	assert.Equal(t, "file-exists", result.AbortedBy)
	assert.Equal(t, 1, result.Stats.Skipped)
}

func TestRunMissingRepositoryIsRuntimeError(t *testing.T) {
	dir := t.TempDir()
	checks := writeChecks(t, "checks:\n  - type: untracked\n")
	h := newHarness(t, &Config{WorkDir: dir, CheckConfig: checks})

	err := h.Run(context.Background())
	require.Error(t, err)
	assert.True(t, IsRuntimeError(err))
	assert.False(t, IsCheckFailureError(err))
}

func TestRunWritesTranscriptsAndSummary(t *testing.T) {
	dir := initRepo(t)
	logDir := t.TempDir()
	fakeMake := filepath.Join(t.TempDir(), "fakemake")
	require.NoError(t, os.WriteFile(fakeMake, []byte("#!/bin/sh\necho building \"$@\"\n"), 0755))
	checks := writeChecks(t, `
checks:
  - type: make
    rule: build
`)
	h := newHarness(t, &Config{
		WorkDir:     dir,
		CheckConfig: checks,
		LogDir:      logDir,
		MakeBinary:  fakeMake,
	})

	err := h.Run(context.Background())
	require.NoError(t, err)

	runDirs, err := filepath.Glob(filepath.Join(logDir, "checkrun-*"))
	require.NoError(t, err)
	require.Len(t, runDirs, 1)

	transcript, err := os.ReadFile(filepath.Join(runDirs[0], "build.log"))
	require.NoError(t, err)
	assert.Contains(t, string(transcript), "building build")

	summary, err := os.ReadFile(filepath.Join(runDirs[0], "summary.log"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Overall: PASS")

	result := h.Result()
	require.NotNil(t, result)
	require.Len(t, result.Checks, 1)
	assert.Equal(t, filepath.Join(runDirs[0], "build.log"), result.Checks[0].TranscriptPath)
}

func TestRunFailingBuild(t *testing.T) {
	dir := initRepo(t)
	fakeMake := filepath.Join(t.TempDir(), "fakemake")
	require.NoError(t, os.WriteFile(fakeMake, []byte("#!/bin/sh\nexit 2\n"), 0755))
	checks := writeChecks(t, `
checks:
  - type: make
    rule: build
`)
	h := newHarness(t, &Config{WorkDir: dir, CheckConfig: checks, MakeBinary: fakeMake})

	err := h.Run(context.Background())
	require.Error(t, err)
	assert.True(t, IsCheckFailureError(err), "a failing build is a check failure, not a runtime error")
}
