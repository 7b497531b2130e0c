package checks

import (
	"context"

	"github.com/classkit/repogate/types"
)

// Ignored passes iff no ignored files are present under the configured
// sub-path. It is typically run after a clean rule to verify build
// byproducts were removed.
type Ignored struct {
	attrs
	path string
}

// NewIgnored creates an ignored-files check. An empty path defaults to the
// working directory.
func NewIgnored(path string, abortOnError bool) *Ignored {
	return &Ignored{attrs: attrs{abortOnError: abortOnError}, path: path}
}

func (c *Ignored) Name() string {
	return "ignored-files"
}

func (c *Ignored) Run(_ context.Context, rc *types.RunContext) (bool, error) {
	path := defaultPath(rc, c.path)
	if path == "" {
		rc.Printf("Checking for ignored files in repository")
	} else {
		rc.Printf("Checking for ignored files at %s", path)
	}
	files, err := rc.Repo.IgnoredFiles(path)
	if err != nil {
		return false, err
	}
	if len(files) > 0 {
		rc.Errorf("Ignored files found in repository:")
		for _, f := range files {
			rc.Errorf("  %s", f)
		}
		return false, nil
	}
	rc.Printf("No ignored files found in repository")
	return true, nil
}
