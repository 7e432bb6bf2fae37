package model

import "fmt"

// LoadError reports an artifact fetch or deserialization failure during
// Handle.Load. The handle stays unloaded when this is returned.
type LoadError struct {
	Model string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load model %q: %v", e.Model, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NotLoadedError reports Predict being invoked on an unloaded handle. It
// indicates a missing Load call or a race against Unload/Reset.
type NotLoadedError struct {
	Model string
}

func (e *NotLoadedError) Error() string {
	return fmt.Sprintf("model %q is not loaded", e.Model)
}
