package suite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classkit/repogate/types"
)

// stubCheck records whether it ran and returns a fixed verdict.
type stubCheck struct {
	name    string
	abort   bool
	verdict bool
	err     error
	panics  bool

	ran   bool
	order *[]string
}

func (c *stubCheck) Name() string       { return c.name }
func (c *stubCheck) AbortOnError() bool { return c.abort }

func (c *stubCheck) Run(_ context.Context, _ *types.RunContext) (bool, error) {
	c.ran = true
	if c.order != nil {
		*c.order = append(*c.order, c.name)
	}
	if c.panics {
		panic("boom")
	}
	return c.verdict, c.err
}

func newSuite(t *testing.T, cs ...*stubCheck) *Suite {
	t.Helper()
	s := New(&types.RunContext{}, nil)
	for _, c := range cs {
		require.NoError(t, s.Register(c))
	}
	return s
}

func TestRunAllPass(t *testing.T) {
	var order []string
	a := &stubCheck{name: "a", verdict: true, order: &order}
	b := &stubCheck{name: "b", verdict: true, order: &order}
	s := newSuite(t, a, b)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.CheckStatusPass, result.Status)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 2, result.Stats.Passed)
	assert.Zero(t, result.Stats.Failed)
	assert.False(t, result.Aborted)
	assert.NotEmpty(t, result.RunID)
}

func TestRunFailureWithoutAbortContinues(t *testing.T) {
	var order []string
	a := &stubCheck{name: "a", verdict: false, order: &order}
	b := &stubCheck{name: "b", verdict: true, order: &order}
	s := newSuite(t, a, b)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.CheckStatusFail, result.Status)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, result.Stats.Failed)
	assert.Equal(t, 1, result.Stats.Passed)
	assert.False(t, result.Aborted)
}

func TestRunAbortSkipsRemaining(t *testing.T) {
	a := &stubCheck{name: "a", verdict: true}
	b := &stubCheck{name: "b", verdict: false, abort: true}
	c := &stubCheck{name: "c", verdict: true}
	d := &stubCheck{name: "d", verdict: true}
	s := newSuite(t, a, b, c, d)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Aborted)
	assert.Equal(t, "b", result.AbortedBy)
	assert.False(t, c.ran, "checks after the aborting failure must not execute")
	assert.False(t, d.ran)

	require.Len(t, result.Checks, 4)
	assert.Equal(t, types.CheckStatusPass, result.Checks[0].Status)
	assert.Equal(t, types.CheckStatusFail, result.Checks[1].Status)
	assert.Equal(t, types.CheckStatusSkip, result.Checks[2].Status)
	assert.Equal(t, types.CheckStatusSkip, result.Checks[3].Status)
	assert.Equal(t, 2, result.Stats.Skipped)
	assert.Equal(t, types.CheckStatusFail, result.Status)
}

func TestRunAbortIgnoredWhenCheckPasses(t *testing.T) {
	a := &stubCheck{name: "a", verdict: true, abort: true}
	b := &stubCheck{name: "b", verdict: true}
	s := newSuite(t, a, b)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, b.ran)
	assert.False(t, result.Aborted)
	assert.Equal(t, types.CheckStatusPass, result.Status)
}

func TestRunHarnessErrorPropagates(t *testing.T) {
	a := &stubCheck{name: "a", verdict: true}
	b := &stubCheck{name: "b", err: errors.New("disk gone")}
	c := &stubCheck{name: "c", verdict: true}
	s := newSuite(t, a, b, c)

	result, err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
	assert.False(t, c.ran)

	// Partial result still covers the full check list; the unreached
	// check is recorded as skipped.
	require.NotNil(t, result)
	require.Len(t, result.Checks, 3)
	assert.Equal(t, types.CheckStatusFail, result.Checks[1].Status)
	assert.Equal(t, types.CheckStatusSkip, result.Checks[2].Status)
	assert.Equal(t, 1, result.Stats.Skipped)
	assert.Equal(t, types.CheckStatusFail, result.Status)
	assert.Contains(t, result.String(), "c: SKIPPED")
}

func TestRunPanicBecomesHarnessError(t *testing.T) {
	a := &stubCheck{name: "a", panics: true}
	s := newSuite(t, a)

	result, err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runtime error")
	require.NotNil(t, result)
	assert.Equal(t, types.CheckStatusFail, result.Status)
}

func TestRunNoChecksRegistered(t *testing.T) {
	s := New(&types.RunContext{}, nil)
	_, err := s.Run(context.Background())
	require.Error(t, err)
}

func TestRegisterAfterRun(t *testing.T) {
	a := &stubCheck{name: "a", verdict: true}
	s := newSuite(t, a)
	_, err := s.Run(context.Background())
	require.NoError(t, err)

	err = s.Register(&stubCheck{name: "late"})
	require.Error(t, err)
}

func TestResultString(t *testing.T) {
	a := &stubCheck{name: "alpha", verdict: true}
	b := &stubCheck{name: "beta", verdict: false, abort: true}
	c := &stubCheck{name: "gamma", verdict: true}
	s := newSuite(t, a, b, c)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	out := result.String()
	assert.Contains(t, out, "alpha: PASS")
	assert.Contains(t, out, "beta: FAIL")
	assert.Contains(t, out, "gamma: SKIPPED")
	assert.Contains(t, out, "Run aborted by beta")
	assert.Contains(t, out, "Overall: FAIL")
	assert.Contains(t, out, "Total: 3, Passed: 1, Failed: 1, Skipped: 1")
}

func TestResultStringAllPass(t *testing.T) {
	a := &stubCheck{name: "alpha", verdict: true}
	s := newSuite(t, a)

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, result.String(), "Overall: PASS")
}
