package dispatchcore

import "errors"

// Caller errors: the call is rejected and logged as a warning, never
// panics.
var (
	ErrWildcardPublishTarget = errors.New("publish target topic contains a wildcard segment")
	ErrNilEventPayload       = errors.New("event payload is nil")
	ErrUnregisteredAgent     = errors.New("agent id is not registered")
	ErrWildcardNotInTail     = errors.New("multi-level wildcard segment must be the last segment")
	ErrDuplicateAgentID      = errors.New("agent id already registered")
)

// Fatal, construction-time-class errors. No code in the module returns
// or panics with ErrInvalidSeed; the one panic the core raises is the
// interner's id-space exhaustion in interner.Intern.
var (
	ErrInvalidSeed = errors.New("rng seed source is invalid")
)
