package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Audio asset errors
	ErrNotFound          = fmt.Errorf("audio file not found")
	ErrUnsupportedFormat = fmt.Errorf("unsupported audio format")

	// Lyric and session errors
	ErrEmptyFile       = fmt.Errorf("lyric file has no usable lines")
	ErrNotReady        = fmt.Errorf("audio and lyrics must be loaded first")
	ErrAlreadyComplete = fmt.Errorf("all lines are already timestamped")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
