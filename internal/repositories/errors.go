package repositories

import "errors"

// ErrNotFound is returned when an identifier or lookup field does not
// resolve to a stored document. Callers test for it with errors.Is.
var ErrNotFound = errors.New("record not found")
