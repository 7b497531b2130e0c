// Package logging manages the per-run transcript directory: one plain-text
// file per check that requested output capture, plus a run summary.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// RunDirectoryPrefix is the standardized prefix for run directories.
	RunDirectoryPrefix = "checkrun-"
	// SummaryFilename is the per-run summary written next to the transcripts.
	SummaryFilename = "summary.log"
)

// TranscriptLogger owns one run directory under the configured base
// directory and hands out transcript files inside it. Files are created
// unbuffered so line writes land on disk immediately.
type TranscriptLogger struct {
	baseDir string
	runDir  string
	runID   string

	mu   sync.Mutex
	open []*os.File
}

// NewTranscriptLogger creates the run directory (and any missing parents)
// under baseDir and returns a logger bound to it.
func NewTranscriptLogger(baseDir string) (*TranscriptLogger, error) {
	runID := uuid.New().String()
	dirName := fmt.Sprintf("%s%s-%s", RunDirectoryPrefix, time.Now().Format("20060102-150405"), runID[:8])
	runDir := filepath.Join(baseDir, dirName)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("creating run directory %s: %w", runDir, err)
	}
	return &TranscriptLogger{
		baseDir: baseDir,
		runDir:  runDir,
		runID:   runID,
	}, nil
}

// RunID returns the unique identifier of this run.
func (l *TranscriptLogger) RunID() string {
	return l.runID
}

// RunDir returns the directory holding this run's transcripts.
func (l *TranscriptLogger) RunDir() string {
	return l.runDir
}

// Create opens a transcript file with the given name inside the run
// directory. The name is sanitized into a flat filename; the caller owns
// closing the file, but Close will sweep up anything left open.
func (l *TranscriptLogger) Create(name string) (*os.File, string, error) {
	path := filepath.Join(l.runDir, SanitizeFilename(name))
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("creating transcript %s: %w", path, err)
	}
	l.mu.Lock()
	l.open = append(l.open, f)
	l.mu.Unlock()
	return f, path, nil
}

// WriteSummary writes the rendered run summary and returns its path.
func (l *TranscriptLogger) WriteSummary(content string) (string, error) {
	path := filepath.Join(l.runDir, SummaryFilename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing summary %s: %w", path, err)
	}
	return path, nil
}

// Close closes any transcript files that are still open.
func (l *TranscriptLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var firstErr error
	for _, f := range l.open {
		if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) && firstErr == nil {
			firstErr = err
		}
	}
	l.open = nil
	return firstErr
}

// SanitizeFilename flattens a transcript name into a safe filename:
// path separators and spaces become underscores.
func SanitizeFilename(name string) string {
	r := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return r.Replace(name)
}
