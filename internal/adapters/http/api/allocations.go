package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/subratasarker952/waitumusic-sub016/internal/app"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/types"
)

// AllocationDependencies defines the allocation operations used by the handlers.
type AllocationDependencies interface {
	Allocate(ctx context.Context, req types.AllocationRequest) (types.AllocationResponse, error)
	AllocateBatch(ctx context.Context, reqs []types.AllocationRequest) ([]types.BatchItem, error)
}

// AllocationsHandler handles allocation requests.
type AllocationsHandler struct {
	deps         AllocationDependencies
	maxBodyBytes int64
}

// NewAllocationsHandler creates a new allocations handler.
func NewAllocationsHandler(deps AllocationDependencies, maxBodyBytes int64) *AllocationsHandler {
	return &AllocationsHandler{deps: deps, maxBodyBytes: maxBodyBytes}
}

// HandlePostAllocation handles POST /allocations requests.
func (h *AllocationsHandler) HandlePostAllocation(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_allocation"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req types.AllocationRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	resp, err := h.deps.Allocate(r.Context(), req)
	if err != nil {
		writeAllocationError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandlePostBatch handles POST /allocations/batch requests. Per-booking
// failures are reported on their items with a 200 response.
func (h *AllocationsHandler) HandlePostBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_allocation_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req batchRequest
	if !h.decode(w, r, op, &req) {
		return
	}
	items, err := h.deps.AllocateBatch(r.Context(), req.Requests)
	switch {
	case errors.Is(err, service.ErrEmptyBatch), errors.Is(err, service.ErrBatchTooLarge):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	case err != nil:
		writeAllocationError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Items: items})
}

func (h *AllocationsHandler) decode(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrBadRequest, err))
			return false
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return false
	}
	return true
}

func writeAllocationError(w http.ResponseWriter, op string, err error) {
	var cfgErr *model.ConfigurationError
	if errors.As(err, &cfgErr) {
		writeError(w, http.StatusUnprocessableEntity, "invalid_template", WrapKind(op, ErrInvalidTemplate, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
}
