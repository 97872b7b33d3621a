package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrServe         = errors.New("serve failed")
	ErrBadRequest    = errors.New("bad request")
	ErrLimitExceeded = errors.New("limit exceeds maximum")
	ErrRateLimited   = errors.New("rate limit exceeded")
)
