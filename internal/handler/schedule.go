package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/scoala-altfel/orar/backend/internal/domain"
)

type slotRequest struct {
	ClassName string `json:"className" validate:"notblank"`
	Day       string `json:"day" validate:"notblank"`
	Time      string `json:"time" validate:"notblank"`
}

func (s slotRequest) key() domain.SlotKey {
	return domain.SlotKey{ClassName: s.ClassName, Day: s.Day, Time: s.Time}
}

func (h *Handler) GetAllScheduleEntries(w http.ResponseWriter, r *http.Request) {
	if h.schedule == nil {
		h.writeJSON(w, r, http.StatusOK, envelope{
			"entries": []domain.ScheduleEntry{},
			"error":   msgNotConfigured,
		})
		return
	}

	entries, err := h.schedule.GetAllScheduleEntries(r.Context())
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, envelope{"entries": entries})
}

// SaveScheduleEntry upserts the whole slot; omitted activity or professor become "".
func (h *Handler) SaveScheduleEntry(w http.ResponseWriter, r *http.Request) {
	if h.schedule == nil {
		h.notConfigured(w, r)
		return
	}

	var req struct {
		ClassName string `json:"className" validate:"notblank"`
		Day       string `json:"day" validate:"notblank"`
		Time      string `json:"time" validate:"notblank"`
		Activity  string `json:"activity"`
		Professor string `json:"professor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	entry := &domain.ScheduleEntry{
		ClassName: req.ClassName,
		Day:       req.Day,
		Time:      req.Time,
		Activity:  req.Activity,
		Professor: req.Professor,
	}

	if err := h.schedule.UpsertScheduleEntry(r.Context(), entry); err != nil {
		h.storageError(w, r, err)
		return
	}

	h.publish(r.Context(), domain.ChangeSaved, *entry)
	h.writeJSON(w, r, http.StatusOK, envelope{"entry": entry})
}

func (h *Handler) DeleteScheduleEntry(w http.ResponseWriter, r *http.Request) {
	if h.schedule == nil {
		h.notConfigured(w, r)
		return
	}

	var req slotRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.schedule.DeleteScheduleEntry(r.Context(), req.key()); err != nil {
		h.storageError(w, r, err)
		return
	}

	h.publish(r.Context(), domain.ChangeDeleted, domain.ScheduleEntry{
		ClassName: req.ClassName,
		Day:       req.Day,
		Time:      req.Time,
	})
	h.writeJSON(w, r, http.StatusOK, envelope{"success": true})
}

// publish never fails the request: the write is already in the store.
func (h *Handler) publish(ctx context.Context, kind domain.ChangeKind, entry domain.ScheduleEntry) {
	if h.publisher == nil {
		return
	}

	change := domain.ScheduleChange{Kind: kind, Entry: entry, OccurredAt: time.Now()}
	if err := h.publisher.Publish(ctx, change); err != nil {
		slog.Warn("failed to publish schedule change", "kind", kind, "slot", entry.Key().String(), "error", err)
	}
}
