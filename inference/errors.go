package inference

import "errors"

var (
	// ErrPoolClosed is returned when acquiring from a closed pool.
	ErrPoolClosed = errors.New("inference: pool closed")

	// ErrSessionClosed is returned when running a closed session.
	ErrSessionClosed = errors.New("inference: session closed")
)
