package state

import "errors"

// ErrInvariantViolation indicates a state-based check detected an
// impossible state (negative counts, dangling attachment). This is
// always a programming error in the caller or a card hook, never a
// recoverable condition (spec.md §7).
var ErrInvariantViolation = errors.New("invariant violation")
