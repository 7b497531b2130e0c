// Package repo defines the repository query facade consumed by checks and
// provides a go-git backed implementation. The harness treats the backend
// as a black box: it only asks status and history questions, it never
// mutates the repository.
package repo

import "time"

// CommitInfo describes one commit returned by CommitHistory.
type CommitInfo struct {
	ShortID string    // Abbreviated commit hash
	Time    time.Time // Committer timestamp, UTC
	Message string    // Commit message, trimmed
}

// Repository is the query contract over a version-controlled working tree.
// All path lists are relative to the repository root and sorted; errors from
// any method are harness errors, not check failures.
type Repository interface {
	// Root returns the absolute path of the repository root.
	Root() string
	// UntrackedFiles returns files that are neither tracked nor ignored.
	UntrackedFiles() ([]string, error)
	// IgnoredFiles returns files under path excluded by ignore rules.
	// An empty path means the whole repository.
	IgnoredFiles(path string) ([]string, error)
	// UncommittedFiles returns tracked files with uncommitted modifications.
	UncommittedFiles() ([]string, error)
	// TrackedFiles returns tracked files under path. An empty path means
	// the whole repository.
	TrackedFiles(path string) ([]string, error)
	// CommitHistory returns commits touching path, newest first. An empty
	// path means the whole repository.
	CommitHistory(path string) ([]CommitInfo, error)
}
