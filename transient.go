// transient.go — transience classification for xgx-rail.
//
// A narrow capability the pipeline consumes: is this error worth retrying?
// The core never retries anything itself; classification and the retry hints
// are advisory. Execution policy lives in collaborators (see retry.go for the
// async helper that consumes this capability).
//
// Classification order in IsTransient:
//   1. Any error in the chain implementing TransientError decides.
//   2. Hosted I/O errnos: connection refused/reset/aborted, timed out,
//      interrupted, would-block → transient.
//   3. Deadline/timeout sentinels (context.DeadlineExceeded,
//      os.ErrDeadlineExceeded) and net timeouts → transient.
//   4. Everything else is permanent.
package xgxrail

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"
	"time"
)

// TransientError is implemented by errors that can say whether a retry may
// succeed. Transience is a hint, never an obligation.
type TransientError interface {
	IsTransient() bool
}

// RetryAfterHinter optionally suggests how long to wait before retrying.
type RetryAfterHinter interface {
	RetryAfterHint() (time.Duration, bool)
}

// MaxRetriesHinter optionally caps how many retries are worth attempting.
type MaxRetriesHinter interface {
	MaxRetriesHint() (uint32, bool)
}

// transientErrnos are the I/O conditions classified as transient.
var transientErrnos = []error{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.ECONNABORTED,
	syscall.ETIMEDOUT,
	syscall.EINTR,
	syscall.EAGAIN, // EWOULDBLOCK aliases EAGAIN on supported platforms
}

// IsTransient classifies an error chain. A TransientError anywhere in the
// chain takes precedence; otherwise the hosted I/O rules apply.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var te TransientError
	if errors.As(err, &te) {
		return te.IsTransient()
	}
	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}

// IsPermanent is the negation of IsTransient for non-nil errors.
func IsPermanent(err error) bool {
	return err != nil && !IsTransient(err)
}

// RetryAfterHintOf forwards the chain's retry-delay hint: a RetryAfterHinter
// implementation wins, then a "retry_after_hint" metadata context.
func RetryAfterHintOf(err error) (time.Duration, bool) {
	var h RetryAfterHinter
	if errors.As(err, &h) {
		return h.RetryAfterHint()
	}
	return fieldRetryAfterHint.Get(err)
}

// MaxRetriesHintOf forwards the chain's retry-count hint: a MaxRetriesHinter
// implementation wins, then a "max_retries_hint" metadata context.
func MaxRetriesHintOf(err error) (uint32, bool) {
	var h MaxRetriesHinter
	if errors.As(err, &h) {
		return h.MaxRetriesHint()
	}
	return fieldMaxRetriesHint.Get(err)
}

// -----------------------------------------------------------------------------
// MarkedError
// -----------------------------------------------------------------------------

// MarkedError adapts any error with a caller-supplied classifier, supplying
// transience without modifying the underlying type.
type MarkedError struct {
	err      error
	classify func(error) bool
}

// Mark wraps err so that IsTransient consults classify(err).
// A nil classifier marks the error permanent.
func Mark(err error, classify func(error) bool) *MarkedError {
	return &MarkedError{err: err, classify: classify}
}

// MarkTransient marks err unconditionally transient.
func MarkTransient(err error) *MarkedError {
	return Mark(err, func(error) bool { return true })
}

// MarkPermanent marks err unconditionally permanent, shielding any deeper
// TransientError implementation from classification.
func MarkPermanent(err error) *MarkedError {
	return Mark(err, func(error) bool { return false })
}

func (m *MarkedError) Error() string {
	if m.err == nil {
		return ""
	}
	return m.err.Error()
}

// Unwrap keeps errors.Is/As working through the mark.
func (m *MarkedError) Unwrap() error { return m.err }

// IsTransient implements TransientError via the captured classifier.
func (m *MarkedError) IsTransient() bool {
	return m.classify != nil && m.classify(m.err)
}
