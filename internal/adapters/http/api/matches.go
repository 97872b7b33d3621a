package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/talentmatch/internal/domain/matching"
	"github.com/okian/talentmatch/pkg/logger"
)

// MatchDependencies defines the interface for ranking operations.
type MatchDependencies interface {
	FindMatches(ctx context.Context, requestID string, limit int) ([]matching.Match, error)
	FindTopMatches(ctx context.Context, requestID string) ([]matching.Match, error)
}

// MatchHandler handles the matches endpoints of a client request.
type MatchHandler struct {
	deps         MatchDependencies
	defaultLimit int
	maxLimit     int
	logger       logger.Logger
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps MatchDependencies, defaultLimit, maxLimit int, l logger.Logger) *MatchHandler {
	return &MatchHandler{
		deps:         deps,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       l,
	}
}

type matchesResponse struct {
	RequestID    string           `json:"requestId"`
	TotalMatches int              `json:"totalMatches"`
	Matches      []matching.Match `json:"matches"`
}

type topMatchesResponse struct {
	RequestID  string           `json:"requestId"`
	TopMatches []matching.Match `json:"topMatches"`
}

// HandleMatches handles GET /api/clients/requests/{id}/matches?limit=N.
// A missing, non-numeric or non-positive limit falls back to the default.
func (h *MatchHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	limit := h.defaultLimit
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		limit = n
	}
	if limit > h.maxLimit {
		err := fmt.Errorf("%w: %d > %d", ErrLimitExceeded, limit, h.maxLimit)
		writeError(w, "Failed to find matches", err)
		return
	}

	matches, err := h.deps.FindMatches(r.Context(), id, limit)
	if err != nil {
		h.logger.Warn(r.Context(), "find matches failed", logger.String("requestID", id), logger.Error(err))
		writeError(w, failure(err, "Client request not found", "Failed to find matches"), err)
		return
	}
	writeData(w, http.StatusOK, "", matchesResponse{
		RequestID:    id,
		TotalMatches: len(matches),
		Matches:      nonNil(matches),
	})
}

// HandleTopMatches handles GET /api/clients/requests/{id}/top-matches.
func (h *MatchHandler) HandleTopMatches(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	matches, err := h.deps.FindTopMatches(r.Context(), id)
	if err != nil {
		h.logger.Warn(r.Context(), "find top matches failed", logger.String("requestID", id), logger.Error(err))
		writeError(w, failure(err, "Client request not found", "Failed to find top matches"), err)
		return
	}
	writeData(w, http.StatusOK, "", topMatchesResponse{RequestID: id, TopMatches: nonNil(matches)})
}

// nonNil keeps empty results encoded as [] instead of null.
func nonNil(m []matching.Match) []matching.Match {
	if m == nil {
		return []matching.Match{}
	}
	return m
}
