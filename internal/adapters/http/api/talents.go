package api

import (
	"context"
	"net/http"

	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/pkg/logger"
)

// TalentDependencies defines the interface for talent operations.
type TalentDependencies interface {
	CreateTalent(ctx context.Context, t model.Talent) (model.Talent, error)
	GetTalent(ctx context.Context, id string) (model.Talent, error)
	ListTalents(ctx context.Context) ([]model.Talent, error)
	UpdateTalent(ctx context.Context, id string, t model.Talent) (model.Talent, error)
	DeleteTalent(ctx context.Context, id string) error
}

// TalentHandler handles /api/talents.
type TalentHandler struct {
	deps   TalentDependencies
	logger logger.Logger
}

// NewTalentHandler creates a new talent handler.
func NewTalentHandler(deps TalentDependencies, l logger.Logger) *TalentHandler {
	return &TalentHandler{deps: deps, logger: l}
}

// HandleCreate handles POST /api/talents.
func (h *TalentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.Talent
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, "Failed to create talent", err)
		return
	}
	saved, err := h.deps.CreateTalent(r.Context(), in)
	if err != nil {
		h.logger.Warn(r.Context(), "create talent failed", logger.Error(err))
		writeError(w, "Failed to create talent", err)
		return
	}
	writeData(w, http.StatusCreated, "Talent created successfully", saved)
}

// HandleList handles GET /api/talents. Talents are listed in insertion order.
func (h *TalentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	talents, err := h.deps.ListTalents(r.Context())
	if err != nil {
		writeError(w, "Failed to fetch talents", err)
		return
	}
	writeData(w, http.StatusOK, "", talents)
}

// HandleGet handles GET /api/talents/{id}.
func (h *TalentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	talent, err := h.deps.GetTalent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, failure(err, "Talent not found", "Failed to fetch talent"), err)
		return
	}
	writeData(w, http.StatusOK, "", talent)
}

// HandleUpdate handles PUT /api/talents/{id}.
func (h *TalentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in model.Talent
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, "Failed to update talent", err)
		return
	}
	updated, err := h.deps.UpdateTalent(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, failure(err, "Talent not found", "Failed to update talent"), err)
		return
	}
	writeData(w, http.StatusOK, "Talent updated successfully", updated)
}

// HandleDelete handles DELETE /api/talents/{id}.
func (h *TalentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteTalent(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, failure(err, "Talent not found", "Failed to delete talent"), err)
		return
	}
	writeData(w, http.StatusOK, "Talent deleted successfully", nil)
}
