package handler

import "net/http"

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, envelope{
		"status":   "ok",
		"store":    h.config.StoreKind(),
		"schedule": h.config.ScheduleStoreKind(),
	})
}
