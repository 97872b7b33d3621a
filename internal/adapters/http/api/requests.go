package api

import (
	"context"
	"net/http"

	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/pkg/logger"
)

// RequestDependencies defines the interface for client request operations.
type RequestDependencies interface {
	CreateRequest(ctx context.Context, r model.Request) (model.Request, error)
	GetRequest(ctx context.Context, id string) (model.Request, error)
	ListRequests(ctx context.Context) ([]model.Request, error)
	UpdateRequest(ctx context.Context, id string, r model.Request) (model.Request, error)
	DeleteRequest(ctx context.Context, id string) error
}

// RequestHandler handles /api/clients/requests.
type RequestHandler struct {
	deps   RequestDependencies
	logger logger.Logger
}

// NewRequestHandler creates a new client request handler.
func NewRequestHandler(deps RequestDependencies, l logger.Logger) *RequestHandler {
	return &RequestHandler{deps: deps, logger: l}
}

// HandleCreate handles POST /api/clients/requests.
func (h *RequestHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.Request
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, "Failed to create client request", err)
		return
	}
	saved, err := h.deps.CreateRequest(r.Context(), in)
	if err != nil {
		h.logger.Warn(r.Context(), "create request failed", logger.Error(err))
		writeError(w, "Failed to create client request", err)
		return
	}
	writeData(w, http.StatusCreated, "Client request created successfully", saved)
}

// HandleList handles GET /api/clients/requests. Newest requests come first.
func (h *RequestHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	requests, err := h.deps.ListRequests(r.Context())
	if err != nil {
		writeError(w, "Failed to fetch client requests", err)
		return
	}
	writeData(w, http.StatusOK, "", requests)
}

// HandleGet handles GET /api/clients/requests/{id}.
func (h *RequestHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	req, err := h.deps.GetRequest(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, failure(err, "Client request not found", "Failed to fetch client request"), err)
		return
	}
	writeData(w, http.StatusOK, "", req)
}

// HandleUpdate handles PUT /api/clients/requests/{id}.
func (h *RequestHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in model.Request
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, "Failed to update client request", err)
		return
	}
	updated, err := h.deps.UpdateRequest(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, failure(err, "Client request not found", "Failed to update client request"), err)
		return
	}
	writeData(w, http.StatusOK, "Client request updated successfully", updated)
}

// HandleDelete handles DELETE /api/clients/requests/{id}.
func (h *RequestHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteRequest(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, failure(err, "Client request not found", "Failed to delete client request"), err)
		return
	}
	writeData(w, http.StatusOK, "Client request deleted successfully", nil)
}

// failure picks the not-found message when err maps to 404.
func failure(err error, notFound, otherwise string) string {
	if statusFor(err) == http.StatusNotFound {
		return notFound
	}
	return otherwise
}
