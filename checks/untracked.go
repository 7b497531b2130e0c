package checks

import (
	"context"

	"github.com/classkit/repogate/types"
)

// Untracked passes iff the repository has no untracked files. Every
// untracked path is reported as an error line.
type Untracked struct {
	attrs
}

// NewUntracked creates an untracked-files check.
func NewUntracked(abortOnError bool) *Untracked {
	return &Untracked{attrs: attrs{abortOnError: abortOnError}}
}

func (c *Untracked) Name() string {
	return "untracked-files"
}

func (c *Untracked) Run(_ context.Context, rc *types.RunContext) (bool, error) {
	files, err := rc.Repo.UntrackedFiles()
	if err != nil {
		return false, err
	}
	if len(files) > 0 {
		rc.Errorf("Untracked files found in repository:")
		for _, f := range files {
			rc.Errorf("  %s", f)
		}
		return false, nil
	}
	rc.Printf("No untracked files found in repository")
	return true, nil
}
