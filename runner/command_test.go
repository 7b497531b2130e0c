package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteStreamsOutputInOrder(t *testing.T) {
	dir := t.TempDir()
	var transcript bytes.Buffer

	r := New(nil, nil)
	code, err := r.Execute(context.Background(),
		[]string{"/bin/sh", "-c", "echo one; echo two; echo three"}, dir, &transcript)
	require.NoError(t, err)
	require.Equal(t, 0, code)

	lines := nonEmptyLines(transcript.String())
	require.Len(t, lines, 4) // header + three output lines
	assert.Contains(t, lines[0], "Executing command in directory")
	assert.Equal(t, []string{"one", "two", "three"}, lines[1:])
}

func TestExecuteMergesStderrIntoStdout(t *testing.T) {
	dir := t.TempDir()
	var transcript bytes.Buffer

	r := New(nil, nil)
	code, err := r.Execute(context.Background(),
		[]string{"/bin/sh", "-c", "echo out; echo err 1>&2"}, dir, &transcript)
	require.NoError(t, err)
	require.Equal(t, 0, code)

	out := transcript.String()
	assert.Contains(t, out, "out\n")
	assert.Contains(t, out, "err\n")
}

func TestExecuteEchoesToConsole(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	r := New(&console, nil)
	code, err := r.Execute(context.Background(),
		[]string{"/bin/sh", "-c", "echo hello"}, dir, nil)
	require.NoError(t, err)
	require.Equal(t, 0, code)
	assert.Contains(t, console.String(), "hello\n")
}

func TestExecuteReturnsChildExitCode(t *testing.T) {
	dir := t.TempDir()

	r := New(nil, nil)
	code, err := r.Execute(context.Background(),
		[]string{"/bin/sh", "-c", "exit 3"}, dir, nil)
	require.NoError(t, err, "a non-zero exit is not a harness error")
	assert.Equal(t, 3, code)
}

func TestExecuteLaunchFailureIsAnError(t *testing.T) {
	dir := t.TempDir()

	r := New(nil, nil)
	code, err := r.Execute(context.Background(),
		[]string{filepath.Join(dir, "no-such-binary")}, dir, nil)
	require.Error(t, err)
	assert.Equal(t, LaunchFailure, code)
}

func TestExecuteEmptyCommand(t *testing.T) {
	r := New(nil, nil)
	code, err := r.Execute(context.Background(), nil, t.TempDir(), nil)
	require.Error(t, err)
	assert.Equal(t, LaunchFailure, code)
}

func TestExecuteMissingWorkingDirectory(t *testing.T) {
	r := New(nil, nil)
	code, err := r.Execute(context.Background(),
		[]string{"/bin/sh", "-c", "true"}, filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
	assert.Equal(t, LaunchFailure, code)
}

func TestExecuteRunsInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0644))

	var transcript bytes.Buffer
	r := New(nil, nil)
	code, err := r.Execute(context.Background(),
		[]string{"/bin/sh", "-c", "ls"}, dir, &transcript)
	require.NoError(t, err)
	require.Equal(t, 0, code)
	assert.Contains(t, transcript.String(), "marker.txt")
}

func TestExecuteForwardsLongLines(t *testing.T) {
	dir := t.TempDir()
	var transcript bytes.Buffer

	// A 2 MiB line followed by a normal one; neither may be truncated and
	// the exit code must still be the child's.
	r := New(nil, nil)
	code, err := r.Execute(context.Background(),
		[]string{"/bin/sh", "-c", `head -c 2097152 /dev/zero | tr "\0" a; echo; echo tail-line`},
		dir, &transcript)
	require.NoError(t, err)
	require.Equal(t, 0, code)

	lines := nonEmptyLines(transcript.String())
	require.Len(t, lines, 3)
	assert.Len(t, lines[1], 2*1024*1024)
	assert.Equal(t, "tail-line", lines[2])
}

func TestExecuteStripsANSIFromTranscript(t *testing.T) {
	dir := t.TempDir()
	var transcript bytes.Buffer

	r := New(nil, nil)
	code, err := r.Execute(context.Background(),
		[]string{"/bin/sh", "-c", `printf '\033[31mred\033[0m\n'`}, dir, &transcript)
	require.NoError(t, err)
	require.Equal(t, 0, code)
	assert.Contains(t, transcript.String(), "red\n")
	assert.NotContains(t, transcript.String(), "\033[31m")
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
