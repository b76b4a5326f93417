package ir

import "fmt"

// wrapf wraps a sentinel error with caller-supplied context, matching
// the teacher's habit of keeping a small set of sentinel errors and
// attaching the offending name at each call site rather than minting a
// new error type per call site.
func wrapf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
