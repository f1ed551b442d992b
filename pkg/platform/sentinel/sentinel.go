package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Caches and stores return these
// (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrNotFound: entry does not exist or has expired
//   - ErrUnavailable: backing service temporarily unavailable
//   - ErrConflict: entry already exists
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
