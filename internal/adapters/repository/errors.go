package repository

import (
	"errors"

	"github.com/okian/talentmatch/internal/domain/model"
)

// Sentinel kinds for store errors.
var (
	ErrNotFound      = model.ErrNotFound
	ErrConflict      = errors.New("record already exists")
	ErrUnknownDriver = errors.New("unknown store driver")
)
