package sentinel

import "errors"

// Sentinel errors for storage facts. Governance stores return these (optionally wrapped)
// and services translate them into coded domain errors.
//
//   - ErrNotFound: the record or the upstream entity does not exist
//   - ErrConflict: a uniqueness constraint already holds a record for the key
//   - ErrUnavailable: the backing store or lock service cannot be reached
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
