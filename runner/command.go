// Package runner launches external commands and streams their merged
// stdout/stderr line by line to a transcript and the console. Lines are
// forwarded as they arrive so long-running builds show live progress.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/ethereum/go-ethereum/log"
)

// LaunchFailure is the sentinel exit code returned when the command never
// ran: empty argv, missing working directory, or an unlaunchable binary.
// It is always accompanied by a non-nil error so the caller can tell a
// harness error from an ordinary non-zero exit.
const LaunchFailure = -1

// CommandRunner executes one command at a time. Console is the echo target
// for output lines; nil disables echoing.
type CommandRunner struct {
	Console io.Writer
	Log     log.Logger
}

// New creates a CommandRunner. A nil logger falls back to the root logger.
func New(console io.Writer, logger log.Logger) *CommandRunner {
	if logger == nil {
		logger = log.New()
	}
	return &CommandRunner{Console: console, Log: logger}
}

// Execute runs argv in dir with stdout and stderr merged into one stream.
// Each line is written to the transcript (if non-nil) and echoed to the
// console before the next line is read; nothing is buffered until exit.
// The returned exit code is the child's, 0 meaning success. A non-nil
// error means the command could not be run or drained at all, which is a
// harness error rather than a check failure.
func (r *CommandRunner) Execute(ctx context.Context, argv []string, dir string, transcript io.Writer) (int, error) {
	if len(argv) == 0 {
		return LaunchFailure, errors.New("empty command")
	}
	if fi, err := os.Stat(dir); err != nil {
		return LaunchFailure, fmt.Errorf("working directory %s: %w", dir, err)
	} else if !fi.IsDir() {
		return LaunchFailure, fmt.Errorf("working directory %s is not a directory", dir)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	// One pipe for both streams keeps output ordering and gives us a single
	// incremental read loop. The parent closes its write end right after
	// launch so EOF arrives when the child exits.
	pr, pw, err := os.Pipe()
	if err != nil {
		return LaunchFailure, fmt.Errorf("creating output pipe: %w", err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	header := fmt.Sprintf("Executing command in directory %s: %s", dir, strings.Join(argv, " "))
	r.forwardLine(header, transcript)
	r.Log.Debug("executing command", "argv", argv, "dir", dir)

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return LaunchFailure, fmt.Errorf("launching %s: %w", argv[0], err)
	}
	pw.Close()

	// ReadString has no line-length cap, so arbitrarily long lines are
	// forwarded whole instead of truncating the stream.
	reader := bufio.NewReader(pr)
	var readErr error
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			r.forwardLine(strings.TrimRight(line, "\r\n"), transcript)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}
	}
	pr.Close()

	waitErr := cmd.Wait()
	// A drain failure means the transcript is incomplete; surface it as a
	// harness error even when the child exited on its own.
	if readErr != nil {
		return LaunchFailure, fmt.Errorf("draining output of %s: %w", argv[0], readErr)
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			r.Log.Debug("command exited", "argv", argv, "code", exitErr.ExitCode())
			return exitErr.ExitCode(), nil
		}
		return LaunchFailure, fmt.Errorf("waiting for %s: %w", argv[0], waitErr)
	}
	return 0, nil
}

// forwardLine dispatches one output line to the console and the transcript.
// Transcripts get ANSI escape codes stripped; the console keeps them.
func (r *CommandRunner) forwardLine(line string, transcript io.Writer) {
	if r.Console != nil {
		fmt.Fprintln(r.Console, line)
	}
	if transcript != nil {
		fmt.Fprintln(transcript, stripansi.Strip(line))
	}
}
