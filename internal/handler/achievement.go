package handler

import (
	"net/http"

	"github.com/lifequest/platform/internal/auth"
	"github.com/lifequest/platform/internal/service"
)

// AchievementHandler handles the achievement catalog and per-user unlocks.
type AchievementHandler struct {
	achievementSvc *service.AchievementService
}

// NewAchievementHandler creates a new AchievementHandler.
func NewAchievementHandler(achievementSvc *service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementSvc: achievementSvc}
}

// ListCatalog handles GET /achievements.
func (h *AchievementHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	defs, err := h.achievementSvc.ListCatalog(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, defs)
}

// ListUnlocked handles GET /achievements/unlocked.
func (h *AchievementHandler) ListUnlocked(w http.ResponseWriter, r *http.Request) {
	unlocks, err := h.achievementSvc.ListUnlocked(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, unlocks)
}

// Create handles POST /admin/achievements.
func (h *AchievementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.AchievementInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}
	a, err := h.achievementSvc.Create(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, a)
}

// Update handles PUT /admin/achievements/{id}.
func (h *AchievementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	var input service.AchievementInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}
	a, err := h.achievementSvc.Update(r.Context(), id, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, a)
}

// Delete handles DELETE /admin/achievements/{id}.
func (h *AchievementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := h.achievementSvc.Delete(r.Context(), id); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusNoContent, nil)
}
