package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/scoala-altfel/orar/backend/internal/domain"
)

func (h *Handler) GetAllPartners(w http.ResponseWriter, r *http.Request) {
	if h.partners == nil {
		h.writeJSON(w, r, http.StatusOK, envelope{
			"partners": []domain.Partner{},
			"error":    msgNotConfigured,
		})
		return
	}

	recs, err := h.partners.GetAllPartners(r.Context())
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, envelope{"partners": domain.NormalizePartners(recs)})
}

func (h *Handler) CreatePartner(w http.ResponseWriter, r *http.Request) {
	if h.partners == nil {
		h.notConfigured(w, r)
		return
	}

	var req struct {
		Name string `json:"name" validate:"notblank"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rec, err := h.partners.CreatePartner(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			h.conflict(w, r, msgDuplicatePartner)
		default:
			h.storageError(w, r, err)
		}
		return
	}

	h.writeJSON(w, r, http.StatusCreated, envelope{"partner": domain.NormalizePartner(rec, 0)})
}

func (h *Handler) DeletePartner(w http.ResponseWriter, r *http.Request) {
	if h.partners == nil {
		h.notConfigured(w, r)
		return
	}

	var req struct {
		ID string `json:"id" validate:"notblank"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.partners.DeletePartner(r.Context(), strings.TrimSpace(req.ID)); err != nil {
		h.storageError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, envelope{"success": true})
}
