package handler

import (
	"net/http"

	"github.com/lifequest/platform/internal/auth"
	"github.com/lifequest/platform/internal/service"
)

// HabitHandler handles habit CRUD, completion and failure endpoints.
type HabitHandler struct {
	habitSvc  *service.HabitService
	rewardSvc *service.RewardService
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(habitSvc *service.HabitService, rewardSvc *service.RewardService) *HabitHandler {
	return &HabitHandler{habitSvc: habitSvc, rewardSvc: rewardSvc}
}

// Create handles POST /habits.
func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateHabitInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}
	habit, err := h.habitSvc.Create(r.Context(), auth.UserID(r.Context()), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, habit)
}

// List handles GET /habits.
func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	habits, err := h.habitSvc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, habits)
}

// Complete handles POST /habits/{id}/complete.
func (h *HabitHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	result, err := h.rewardSvc.CompleteHabit(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

// Fail handles POST /habits/{id}/fail.
func (h *HabitHandler) Fail(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	outcome, err := h.rewardSvc.FailHabit(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, outcome)
}

// Delete handles DELETE /habits/{id}.
func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := h.habitSvc.Delete(r.Context(), auth.UserID(r.Context()), id); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}
