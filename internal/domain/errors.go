package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexNotLoaded signals a search before the index snapshot was installed.
	ErrIndexNotLoaded = errors.New("search index not loaded")
	// ErrIndexAlreadyLoaded signals a second install of the write-once snapshot.
	ErrIndexAlreadyLoaded = errors.New("search index already loaded")
	// ErrIndexUnavailable signals that the index could not be fetched or decoded.
	ErrIndexUnavailable = errors.New("search index unavailable")
	// ErrInvalidQuery signals a query rejected before parsing (e.g. too long).
	ErrInvalidQuery = errors.New("invalid query")
)

// IndexLoadError wraps ErrIndexUnavailable with the location that failed.
type IndexLoadError struct {
	Location string
	Err      error
}

func (e *IndexLoadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrIndexUnavailable.Error(), e.Location, e.Err)
}

func (e *IndexLoadError) Unwrap() []error { return []error{ErrIndexUnavailable, e.Err} }

// NewIndexLoadError creates an index load error for location.
func NewIndexLoadError(location string, err error) error {
	return &IndexLoadError{Location: location, Err: err}
}
