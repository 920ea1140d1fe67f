package activity

import "errors"

// ErrInvalidInput indicates a missing or malformed activity entry.
var ErrInvalidInput = errors.New("invalid activity entry")
