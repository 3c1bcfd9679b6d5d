package vertexpath

import "errors"

// Store and query errors.
var (
	ErrUninitialized    = errors.New("vertex path has no committed data")
	ErrMismatchedCommit = errors.New("mismatched vertex path commit")
	ErrInvalidSpace     = errors.New("invalid path space")
	ErrDegenerateLength = errors.New("vertex path has zero length")
	ErrNonFiniteTime    = errors.New("path time is not finite")
	ErrIndexOutOfRange  = errors.New("vertex index out of range")
)
