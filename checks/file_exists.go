package checks

import (
	"context"
	"os"
	"path/filepath"

	"github.com/classkit/repogate/types"
)

// FileExists verifies that a fixed list of relative paths exists in the
// working directory. The verdict is the AND over all paths; every path's
// status is reported.
type FileExists struct {
	attrs
	files []string
}

// NewFileExists creates a file-existence check over the given relative paths.
func NewFileExists(files []string, abortOnError bool) *FileExists {
	return &FileExists{attrs: attrs{abortOnError: abortOnError}, files: files}
}

func (c *FileExists) Name() string {
	return "file-exists"
}

func (c *FileExists) Run(_ context.Context, rc *types.RunContext) (bool, error) {
	ok := true
	for _, f := range c.files {
		path := filepath.Join(rc.WorkDir, f)
		if _, err := os.Stat(path); err != nil {
			rc.Errorf("File does not exist: %s", path)
			ok = false
			continue
		}
		rc.Printf("File exists: %s", path)
	}
	return ok, nil
}
