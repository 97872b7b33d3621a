package matching

import (
	"errors"

	"github.com/okian/talentmatch/internal/domain/model"
)

var (
	// ErrMatchmakingFailed wraps every failure of a ranking call.
	ErrMatchmakingFailed = errors.New("matchmaking failed")

	// ErrNotFound is returned (wrapped) when the request id is unknown.
	ErrNotFound = model.ErrNotFound
)
