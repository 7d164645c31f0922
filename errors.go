package astar

import "errors"

// Precondition errors. FindPath reports them before expanding any node and
// wraps them with the offending input, so match with errors.Is.
var (
	ErrInvalidGrid     = errors.New("invalid grid")
	ErrOutOfBounds     = errors.New("cell out of bounds")
	ErrBlockedEndpoint = errors.New("endpoint is an obstacle")
)

// ErrBudgetExceeded is returned when a search hits its expansion cap before
// settling. It means "no path found within budget", which is not the same as
// an exhausted frontier.
var ErrBudgetExceeded = errors.New("search budget exceeded")
