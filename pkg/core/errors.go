package core

import "errors"

// Common errors.
var (
	// ErrNotFound is the explicit absent-result representation for Load:
	// the id simply has no record. Test with errors.Is.
	ErrNotFound = errors.New("document not found")
)
