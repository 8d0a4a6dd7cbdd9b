package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/lifequest/platform/internal/auth"
	"github.com/lifequest/platform/internal/service"
)

// StoreHandler handles the gear and skill store endpoints.
type StoreHandler struct {
	storeSvc *service.StoreService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(storeSvc *service.StoreService) *StoreHandler {
	return &StoreHandler{storeSvc: storeSvc}
}

// ListGear handles GET /store/gear.
func (h *StoreHandler) ListGear(w http.ResponseWriter, r *http.Request) {
	gear, err := h.storeSvc.ListGear(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, gear)
}

// ListSkills handles GET /store/skills.
func (h *StoreHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.storeSvc.ListSkills(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, skills)
}

// ListInventory handles GET /store/inventory.
func (h *StoreHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.storeSvc.ListInventory(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, items)
}

// BuyGear handles POST /store/gear/{id}/buy.
func (h *StoreHandler) BuyGear(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	purchase, err := h.storeSvc.BuyGear(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, purchase)
}

// BuySkill handles POST /store/skills/{id}/buy.
func (h *StoreHandler) BuySkill(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	var input struct {
		ZoneID *uuid.UUID `json:"zone_id"`
	}
	if r.ContentLength > 0 {
		if err := DecodeJSON(r, &input); err != nil {
			RespondBadBody(w)
			return
		}
	}
	if err := h.storeSvc.BuySkill(r.Context(), auth.UserID(r.Context()), id, input.ZoneID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "purchased"})
}
