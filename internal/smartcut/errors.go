package smartcut

import "errors"

var (
	// ErrInvalidSegment is returned when a segment ends before it starts or starts before zero
	ErrInvalidSegment = errors.New("invalid segment")
	// ErrUnordered is returned when segment start times decrease
	ErrUnordered = errors.New("segments out of order")
	// ErrInvalidTarget is returned when target reduction is outside [0,1)
	ErrInvalidTarget = errors.New("target reduction must be in [0,1)")
	// ErrInvalidConfig is returned for out-of-range engine thresholds
	ErrInvalidConfig = errors.New("invalid engine config")
)
