package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/scoala-altfel/orar/backend/internal/config"
	"github.com/scoala-altfel/orar/backend/internal/domain"
	"github.com/scoala-altfel/orar/backend/internal/repository"
)

// ChangePublisher receives every schedule write that reached the store.
type ChangePublisher interface {
	Publish(ctx context.Context, change domain.ScheduleChange) error
}

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	partners   repository.Store
	schedule   repository.Store
	translator ut.Translator
	publisher  ChangePublisher

	Mux *chi.Mux
}

// NewHandler wires the API. A nil store puts every endpoint in unconfigured mode and a
// nil publisher disables change notifications. When the credentials reach partners but
// not schedule entries (Supabase anon key only), the schedule endpoints stay unconfigured.
func NewHandler(cfg *config.Config, store repository.Store, publisher ChangePublisher) (*Handler, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, err
	}

	schedule := store
	if cfg.ScheduleStoreKind() != cfg.StoreKind() {
		schedule = nil
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		partners:   store,
		schedule:   schedule,
		translator: trans,
		publisher:  publisher,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/healthz", h.Health)

	h.Mux.Route("/api", func(r chi.Router) {
		r.Route("/partners", func(r chi.Router) {
			r.Get("/", h.GetAllPartners)
			r.Post("/", h.CreatePartner)
			r.Delete("/", h.DeletePartner)
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", h.GetAllScheduleEntries)
			r.Post("/", h.SaveScheduleEntry)
			r.Delete("/", h.DeleteScheduleEntry)
		})
	})
}
