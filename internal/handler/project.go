package handler

import (
	"net/http"

	"github.com/lifequest/platform/internal/auth"
	"github.com/lifequest/platform/internal/service"
)

// ProjectHandler handles project CRUD and completion endpoints.
type ProjectHandler struct {
	projectSvc *service.ProjectService
	rewardSvc  *service.RewardService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectSvc *service.ProjectService, rewardSvc *service.RewardService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc, rewardSvc: rewardSvc}
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateProjectInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}
	project, err := h.projectSvc.Create(r.Context(), auth.UserID(r.Context()), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, project)
}

// List handles GET /projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectSvc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, projects)
}

// Complete handles POST /projects/{id}/complete.
func (h *ProjectHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	result, err := h.rewardSvc.CompleteProject(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /projects/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := h.projectSvc.Delete(r.Context(), auth.UserID(r.Context()), id); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}
