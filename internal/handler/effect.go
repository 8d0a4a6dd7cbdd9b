package handler

import (
	"net/http"

	"github.com/lifequest/platform/internal/auth"
	"github.com/lifequest/platform/internal/domain"
	"github.com/lifequest/platform/internal/service"
)

// EffectHandler handles effect application, skill usage and gear usage.
type EffectHandler struct {
	effectSvc *service.EffectService
}

// NewEffectHandler creates a new EffectHandler.
func NewEffectHandler(effectSvc *service.EffectService) *EffectHandler {
	return &EffectHandler{effectSvc: effectSvc}
}

// ListCatalog handles GET /effects.
func (h *EffectHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	effects, err := h.effectSvc.ListCatalog(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, effects)
}

// Apply handles POST /effects/{id}/apply.
func (h *EffectHandler) Apply(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	var ec domain.EffectContext
	if r.ContentLength > 0 {
		if err := DecodeJSON(r, &ec); err != nil {
			RespondBadBody(w)
			return
		}
	}
	user, err := h.effectSvc.Apply(r.Context(), auth.UserID(r.Context()), id, ec)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, user)
}

// UseSkill handles POST /skills/{id}/use.
func (h *EffectHandler) UseSkill(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	var ec domain.EffectContext
	if r.ContentLength > 0 {
		if err := DecodeJSON(r, &ec); err != nil {
			RespondBadBody(w)
			return
		}
	}
	user, err := h.effectSvc.UseSkill(r.Context(), auth.UserID(r.Context()), id, ec)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, user)
}

// UseGear handles POST /gear/{id}/use.
func (h *EffectHandler) UseGear(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	var ec domain.EffectContext
	if r.ContentLength > 0 {
		if err := DecodeJSON(r, &ec); err != nil {
			RespondBadBody(w)
			return
		}
	}
	user, err := h.effectSvc.UseGear(r.Context(), auth.UserID(r.Context()), id, ec)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, user)
}
