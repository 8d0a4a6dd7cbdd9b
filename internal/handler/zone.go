package handler

import (
	"net/http"

	"github.com/lifequest/platform/internal/auth"
	"github.com/lifequest/platform/internal/service"
)

// ZoneHandler handles zone endpoints.
type ZoneHandler struct {
	zoneSvc *service.ZoneService
}

// NewZoneHandler creates a new ZoneHandler.
func NewZoneHandler(zoneSvc *service.ZoneService) *ZoneHandler {
	return &ZoneHandler{zoneSvc: zoneSvc}
}

// Create handles POST /zones.
func (h *ZoneHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateZoneInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}
	zone, err := h.zoneSvc.Create(r.Context(), auth.UserID(r.Context()), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, zone)
}

// List handles GET /zones.
func (h *ZoneHandler) List(w http.ResponseWriter, r *http.Request) {
	zones, err := h.zoneSvc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, zones)
}

// Get handles GET /zones/{id}.
func (h *ZoneHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		RespondError(w, err)
		return
	}
	zone, err := h.zoneSvc.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, zone)
}
