package engine

import "errors"

var (
	// ErrInvalidTransition reports an operation that is not legal in the
	// session's current state.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrSessionTerminal reports an operation on a finished or exited
	// session.
	ErrSessionTerminal = errors.New("session is terminal")

	// ErrHintBudgetExceeded reports a hint request past the per-level
	// allowance.
	ErrHintBudgetExceeded = errors.New("hint budget exceeded")
)
