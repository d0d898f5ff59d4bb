package entry

import "errors"

// Sentinel kinds for entry errors.
var (
	ErrUnknownKind = errors.New("unknown entry kind; must be forecast or actual")
)
