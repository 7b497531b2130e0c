// Package exitcodes defines the standard exit codes used by repogate.
package exitcodes

// Exit code constants used by repogate
// These constants define the exit codes that the application uses to indicate
// various states when it exits:
//
// * Success (0): Used when every check passes
// * CheckFailure (1): Used when one or more checks fail or are skipped by an abort
// * RuntimeErr (2): Used for runtime errors such as I/O failures or a missing repository
const (
	Success      = 0 // All checks pass
	CheckFailure = 1 // Check failures
	RuntimeErr   = 2 // Runtime errors
)
