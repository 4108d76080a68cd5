package dispatch

import (
	"context"
	"errors"
)

var (
	// ErrFetchFailed marks a terminal per-job fetcher failure. The
	// wrapped chain carries the tool diagnostic.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrTimeout marks a fetch that exceeded the per-attempt timeout.
	ErrTimeout = errors.New("fetch timed out")
)

// IsCancellation reports whether err represents run cancellation
// rather than a job failure. Cancelled jobs are skipped, not failed.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}
