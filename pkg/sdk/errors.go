package docdex

import "github.com/kailas-cloud/docdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotLoaded     = domain.ErrIndexNotLoaded
	ErrAlreadyLoaded = domain.ErrIndexAlreadyLoaded
	ErrUnavailable   = domain.ErrIndexUnavailable
	ErrInvalidQuery  = domain.ErrInvalidQuery
)
