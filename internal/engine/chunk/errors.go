package chunk

import "errors"

var (
	// ErrNotInitialized is returned by operations that need a resident working set.
	ErrNotInitialized = errors.New("chunk: manager not initialized")
	// ErrAlreadyInitialized is returned by a second call to Initialize.
	ErrAlreadyInitialized = errors.New("chunk: manager already initialized")
	// ErrTornDown is returned once Cleanup has run.
	ErrTornDown = errors.New("chunk: manager torn down")
)
