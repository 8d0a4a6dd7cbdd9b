package handler

import (
	"net/http"

	"github.com/lifequest/platform/internal/auth"
	"github.com/lifequest/platform/internal/service"
)

// TaskHandler handles task CRUD and completion endpoints.
type TaskHandler struct {
	taskSvc   *service.TaskService
	rewardSvc *service.RewardService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskSvc *service.TaskService, rewardSvc *service.RewardService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc, rewardSvc: rewardSvc}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateTaskInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}
	task, err := h.taskSvc.Create(r.Context(), auth.UserID(r.Context()), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, task)
}

// List handles GET /tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskSvc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, tasks)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	task, err := h.taskSvc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, task)
}

// Complete handles POST /tasks/{id}/complete.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	result, err := h.rewardSvc.CompleteTask(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := h.taskSvc.Delete(r.Context(), auth.UserID(r.Context()), id); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}

// SweepOverdue handles POST /tasks/sweep-overdue.
func (h *TaskHandler) SweepOverdue(w http.ResponseWriter, r *http.Request) {
	flipped, err := h.taskSvc.SweepOverdue(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]int64{"marked_overdue": flipped})
}
