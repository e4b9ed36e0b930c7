package dynamo

import "errors"

// Domain errors for configuration and setup.
var (
	// ErrConfigRead indicates the configuration source could not be read.
	ErrConfigRead = errors.New("dynamo: failed to read configuration")

	// ErrInvalidWindow indicates a window with non-positive dimensions.
	ErrInvalidWindow = errors.New("dynamo: window width and height must be positive")

	// ErrInvalidShape indicates a shape with non-positive parameters.
	ErrInvalidShape = errors.New("dynamo: shape parameters must be positive")

	// ErrUnknownPreset indicates a preset name with no registered scene.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")
)

// FrameError wraps an error with the frame it occurred on.
type FrameError struct {
	Frame   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return e.Wrapped.Error()
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
