package checks

import (
	"context"

	"github.com/classkit/repogate/types"
)

// Uncommitted passes iff no tracked file carries uncommitted modifications.
type Uncommitted struct {
	attrs
}

// NewUncommitted creates an uncommitted-modifications check.
func NewUncommitted(abortOnError bool) *Uncommitted {
	return &Uncommitted{attrs: attrs{abortOnError: abortOnError}}
}

func (c *Uncommitted) Name() string {
	return "uncommitted-files"
}

func (c *Uncommitted) Run(_ context.Context, rc *types.RunContext) (bool, error) {
	files, err := rc.Repo.UncommittedFiles()
	if err != nil {
		return false, err
	}
	if len(files) > 0 {
		rc.Errorf("Uncommitted files found in repository:")
		for _, f := range files {
			rc.Errorf("  %s", f)
		}
		return false, nil
	}
	rc.Printf("No uncommitted files found in repository")
	return true, nil
}
