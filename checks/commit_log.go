package checks

import (
	"context"

	"github.com/classkit/repogate/types"
)

// CommitLog lists the commits touching the configured sub-path. Unlike
// every other check it is purely informational and always passes; it exists
// so graders see the submission history in the transcript.
type CommitLog struct {
	attrs
	path string
}

// NewCommitLog creates a commit-listing check. An empty path defaults to
// the working directory.
func NewCommitLog(path string, abortOnError bool) *CommitLog {
	return &CommitLog{attrs: attrs{abortOnError: abortOnError}, path: path}
}

func (c *CommitLog) Name() string {
	return "commit-log"
}

func (c *CommitLog) Run(_ context.Context, rc *types.RunContext) (bool, error) {
	path := defaultPath(rc, c.path)
	if path == "" {
		rc.Printf("Listing commits for repository")
	} else {
		rc.Printf("Listing commits at %s", path)
	}
	commits, err := rc.Repo.CommitHistory(path)
	if err != nil {
		return false, err
	}
	for _, commit := range commits {
		rc.Printf("%s - %s - %s", commit.ShortID, commit.Time.Format("2006-01-02 15:04:05"), commit.Message)
	}
	rc.Printf("%d commits found", len(commits))
	return true, nil
}
