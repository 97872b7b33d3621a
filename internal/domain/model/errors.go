package model

import "errors"

// ErrNotFound reports that a request or talent id does not resolve to a stored record.
// Stores wrap it with the missing id; callers match with errors.Is.
var ErrNotFound = errors.New("not found")
