package checks

import (
	"context"

	"github.com/classkit/repogate/types"
)

// MaxTrackedFiles passes iff the number of tracked files under the
// configured sub-path does not exceed the maximum.
type MaxTrackedFiles struct {
	attrs
	path string
	max  int
}

// NewMaxTrackedFiles creates a tracked-file-count check. An empty path
// defaults to the working directory.
func NewMaxTrackedFiles(path string, max int, abortOnError bool) *MaxTrackedFiles {
	return &MaxTrackedFiles{attrs: attrs{abortOnError: abortOnError}, path: path, max: max}
}

func (c *MaxTrackedFiles) Name() string {
	return "max-tracked-files"
}

func (c *MaxTrackedFiles) Run(_ context.Context, rc *types.RunContext) (bool, error) {
	path := defaultPath(rc, c.path)
	files, err := rc.Repo.TrackedFiles(path)
	if err != nil {
		return false, err
	}
	where := path
	if where == "" {
		where = "repository"
	}
	rc.Printf("%d tracked files in %s", len(files), where)
	if len(files) > c.max {
		rc.Errorf("Too many tracked files in %s (%d > %d)", where, len(files), c.max)
		return false, nil
	}
	return true, nil
}
