package video

import "errors"

// Errors for frame extraction
var (
	// ErrInvalidArgument indicates a request that fails validation before any
	// processing starts (bad interval, range, or quality).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBackendUnavailable indicates that no frame-decoding backend could be
	// initialized. A single backend being unavailable only triggers fallback;
	// this error means both failed.
	ErrBackendUnavailable = errors.New("no frame extraction backend available")
)
