package rules

import "errors"

// ErrIllegalAction is returned when Apply is asked to apply an action
// that LegalActions would not have produced for the current state
// (spec.md §7, Error Handling Design).
var ErrIllegalAction = errors.New("illegal action")
