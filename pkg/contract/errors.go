package contract

import "errors"

var (
	// ErrInvalidParameter is returned by constructors for structurally invalid terms.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDomain is returned when a payoff is undefined for the given path.
	ErrDomain = errors.New("payoff undefined for path")
	// ErrIndexOutOfRange is returned when a fixing or choice index falls outside the path.
	ErrIndexOutOfRange = errors.New("index out of range")
)
