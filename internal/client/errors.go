package client

import (
	"errors"

	"github.com/okian/talentmatch/internal/domain/model"
)

// Common errors.
var (
	ErrRequestFailed    = errors.New("api request failed")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrConflict         = errors.New("record already exists")
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrNotFound         = model.ErrNotFound
)
