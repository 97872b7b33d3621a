package service

import "errors"

// ErrNotStarted is returned by record and matching calls made before Start.
var ErrNotStarted = errors.New("service not started")
