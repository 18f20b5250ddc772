package api

import (
	"net/http"

	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

// TemplateDependencies exposes the template applied to requests without a mixer.
type TemplateDependencies interface {
	Template() model.MixerConfig
}

// TemplatesHandler handles template requests.
type TemplatesHandler struct {
	deps TemplateDependencies
}

// NewTemplatesHandler creates a new templates handler.
func NewTemplatesHandler(deps TemplateDependencies) *TemplatesHandler {
	return &TemplatesHandler{deps: deps}
}

// HandleGetDefault handles GET /templates/default requests.
func (h *TemplatesHandler) HandleGetDefault(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Template())
}
