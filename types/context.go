package types

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/classkit/repogate/logging"
	"github.com/classkit/repogate/repo"
)

// RunContext is the shared state passed to every check invocation. It is
// owned by the suite runner; checks read it and report through Print/Errorf
// but never replace it or touch the recorded results.
type RunContext struct {
	WorkDir     string                     // Directory checks and builds execute in
	RepoRoot    string                     // Root of the repository under test
	Repo        repo.Repository            // Repository query facade
	Transcripts *logging.TranscriptLogger  // Transcript store; nil disables output capture
	EchoOutput  bool                       // Echo subprocess output to the console
	Out         io.Writer                  // Console writer for check reporting
	Log         log.Logger

	messages       []string
	transcriptPath string
}

// Printf reports an informational line to the console and records it.
func (rc *RunContext) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	rc.messages = append(rc.messages, msg)
	if rc.Out != nil {
		fmt.Fprintln(rc.Out, msg)
	}
}

// Errorf reports an error line. Error lines are recorded with an ERROR
// prefix and shown in red on the console so a false verdict always comes
// with a visible explanation.
func (rc *RunContext) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	rc.messages = append(rc.messages, "ERROR: "+msg)
	if rc.Out != nil {
		fmt.Fprintln(rc.Out, text.FgRed.Sprintf("ERROR: %s", msg))
	}
}

// Messages returns all lines reported so far, in order.
func (rc *RunContext) Messages() []string {
	return rc.messages
}

// SetTranscriptPath records the transcript written by the current check.
// The suite runner collects it into the check's result after the invocation.
func (rc *RunContext) SetTranscriptPath(path string) {
	rc.transcriptPath = path
}

// TakeTranscriptPath returns the current check's transcript path and resets
// it for the next invocation.
func (rc *RunContext) TakeTranscriptPath() string {
	p := rc.transcriptPath
	rc.transcriptPath = ""
	return p
}
