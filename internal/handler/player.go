package handler

import (
	"net/http"

	"github.com/lifequest/platform/internal/auth"
	"github.com/lifequest/platform/internal/service"
)

// PlayerHandler serves the player's own profile, stats and journal.
type PlayerHandler struct {
	statsSvc   *service.StatsService
	journalSvc *service.JournalService
	effectSvc  *service.EffectService
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(statsSvc *service.StatsService, journalSvc *service.JournalService, effectSvc *service.EffectService) *PlayerHandler {
	return &PlayerHandler{statsSvc: statsSvc, journalSvc: journalSvc, effectSvc: effectSvc}
}

// Stats handles GET /me/stats.
func (h *PlayerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsSvc.Snapshot(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, stats)
}

// CreateJournalEntry handles POST /me/journal.
func (h *PlayerHandler) CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	var input service.CreateEntryInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondBadBody(w)
		return
	}
	entry, err := h.journalSvc.CreateEntry(r.Context(), auth.UserID(r.Context()), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, entry)
}

// ListJournal handles GET /me/journal.
func (h *PlayerHandler) ListJournal(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journalSvc.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, entries)
}

// ResetMana handles POST /me/mana/reset.
func (h *PlayerHandler) ResetMana(w http.ResponseWriter, r *http.Request) {
	user, err := h.effectSvc.ResetDailyMana(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, user)
}
