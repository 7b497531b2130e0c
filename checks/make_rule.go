package checks

import (
	"context"
	"io"
	"strings"

	"github.com/classkit/repogate/runner"
	"github.com/classkit/repogate/types"
)

// MakeRule invokes a build rule in the working directory through the
// process runner. The verdict is true iff the command exits zero. When
// transcripts are enabled the command's output is captured to a file named
// after the rule.
type MakeRule struct {
	attrs
	rule           string
	makeBinary     string
	transcriptName string
}

// NewMakeRule creates a build-rule check. An empty transcriptName derives
// one from the rule, spaces replaced by underscores, with a .log suffix.
func NewMakeRule(rule, makeBinary, transcriptName string, abortOnError bool) *MakeRule {
	if makeBinary == "" {
		makeBinary = "make"
	}
	if transcriptName == "" {
		transcriptName = strings.ReplaceAll(rule, " ", "_") + ".log"
	}
	return &MakeRule{
		attrs:          attrs{abortOnError: abortOnError},
		rule:           rule,
		makeBinary:     makeBinary,
		transcriptName: transcriptName,
	}
}

func (c *MakeRule) Name() string {
	return "make " + c.rule
}

func (c *MakeRule) Run(ctx context.Context, rc *types.RunContext) (bool, error) {
	var transcript io.Writer
	if rc.Transcripts != nil {
		f, path, err := rc.Transcripts.Create(c.transcriptName)
		if err != nil {
			// Fail fast before launching anything; an unopenable transcript
			// is a harness error, not a failed check.
			rc.Errorf("Error opening transcript for writing: %v", err)
			return false, err
		}
		defer f.Close()
		rc.Printf("Writing output to %s", path)
		rc.SetTranscriptPath(path)
		transcript = f
	}

	var console = rc.Out
	if !rc.EchoOutput {
		console = nil
	}
	r := runner.New(console, rc.Log)

	argv := append([]string{c.makeBinary}, strings.Fields(c.rule)...)
	code, err := r.Execute(ctx, argv, rc.WorkDir, transcript)
	if err != nil {
		rc.Errorf("Failed to run %s: %v", strings.Join(argv, " "), err)
		return false, err
	}
	if code != 0 {
		rc.Errorf("make %s exited with code %d", c.rule, code)
		return false, nil
	}
	rc.Printf("make %s succeeded", c.rule)
	return true, nil
}
