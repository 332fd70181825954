// Package partners is the partners panel: a locale-sorted cache of partners with
// add and delete flows.
package partners

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/scoala-altfel/orar/backend/internal/client"
	"github.com/scoala-altfel/orar/backend/internal/domain"
)

const (
	MsgLoadFailed   = "Nu am putut încărca partenerii."
	MsgBlankName    = "Introdu numele partenerului."
	MsgAdded        = "Partenerul a fost adăugat."
	MsgAddFailed    = "Nu am putut adăuga partenerul."
	MsgDeleted      = "Partenerul a fost șters."
	MsgDeleteFailed = "Nu am putut șterge partenerul."
	MsgLoading      = "Se încarcă partenerii..."
	MsgEmpty        = "Lista de parteneri este în curs de actualizare."
	MsgUnknownName  = "Partener necunoscut"
	RetryLabel      = "Reîncarcă"
	ListSeparator   = " • "
	HeadingKicker   = "Parteneri & Sponsori"
	HeadingTitle    = "Mulțumim partenerilor!"
)

var (
	ErrBlankName = errors.New("partners: blank name")
	ErrBusy      = errors.New("partners: request already in flight")
)

type PartnersAPI interface {
	ListPartners(ctx context.Context) (*client.PartnerList, error)
	CreatePartner(ctx context.Context, name string) (*domain.Partner, error)
	DeletePartner(ctx context.Context, id string) error
}

type FeedbackKind int

const (
	FeedbackNone FeedbackKind = iota
	FeedbackSuccess
	FeedbackError
)

// Feedback is the inline message shown after an add or delete.
type Feedback struct {
	Kind    FeedbackKind
	Message string
}

// Panel is safe for concurrent use; its lock is never held across an API call.
type Panel struct {
	mu       sync.Mutex
	api      PartnersAPI
	collator *collate.Collator

	partners []domain.Partner
	loading  bool
	loadErr  string
	adding   bool
	deleting map[string]bool
	feedback Feedback
}

func NewPanel(api PartnersAPI) *Panel {
	return &Panel{
		api:      api,
		collator: NewCollator(),
		deleting: make(map[string]bool),
	}
}

// NewCollator compares Romanian names ignoring case and diacritics.
func NewCollator() *collate.Collator {
	return collate.New(language.Romanian, collate.IgnoreCase, collate.IgnoreDiacritics)
}

// SortPartners orders partners by trimmed name using c. The input is not modified.
func SortPartners(c *collate.Collator, partners []domain.Partner) []domain.Partner {
	sorted := slices.Clone(partners)
	slices.SortStableFunc(sorted, func(a, b domain.Partner) int {
		return c.CompareString(strings.TrimSpace(a.Name), strings.TrimSpace(b.Name))
	})
	return sorted
}

// Load replaces the cache with the server's list. On failure the list is emptied and
// the error is kept for display next to the retry control.
func (p *Panel) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.loadErr = ""
	p.mu.Unlock()

	list, err := p.api.ListPartners(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		p.partners = nil
		p.loadErr = MsgLoadFailed
		return fmt.Errorf("load partners: %w", err)
	}

	// the soft notice beside a 200 list is not shown
	p.partners = SortPartners(p.collator, list.Partners)
	return nil
}

// Add creates a partner. Blank names are rejected without a request.
func (p *Panel) Add(ctx context.Context, name string) (*domain.Partner, error) {
	name = strings.TrimSpace(name)

	p.mu.Lock()
	if name == "" {
		p.feedback = Feedback{Kind: FeedbackError, Message: MsgBlankName}
		p.mu.Unlock()
		return nil, ErrBlankName
	}
	if p.adding {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	p.adding = true
	p.feedback = Feedback{}
	p.mu.Unlock()

	created, err := p.api.CreatePartner(ctx, name)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.adding = false

	if err != nil {
		p.feedback = Feedback{Kind: FeedbackError, Message: errorMessage(err, MsgAddFailed)}
		return nil, fmt.Errorf("add partner: %w", err)
	}

	p.insert(*created)
	p.feedback = Feedback{Kind: FeedbackSuccess, Message: MsgAdded}
	return created, nil
}

// Delete removes the partner with id. Only that row is marked busy.
func (p *Panel) Delete(ctx context.Context, id string) error {
	p.mu.Lock()
	if p.deleting[id] {
		p.mu.Unlock()
		return ErrBusy
	}
	p.deleting[id] = true
	p.feedback = Feedback{}
	p.mu.Unlock()

	err := p.api.DeletePartner(ctx, id)

	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.deleting, id)

	if err != nil {
		p.feedback = Feedback{Kind: FeedbackError, Message: errorMessage(err, MsgDeleteFailed)}
		return fmt.Errorf("delete partner %s: %w", id, err)
	}

	p.partners = slices.DeleteFunc(p.partners, func(partner domain.Partner) bool {
		return partner.ID == id
	})
	p.feedback = Feedback{Kind: FeedbackSuccess, Message: MsgDeleted}
	return nil
}

// insert places partner at its sorted position.
func (p *Panel) insert(partner domain.Partner) {
	i, _ := slices.BinarySearchFunc(p.partners, partner, func(a, b domain.Partner) int {
		return p.collator.CompareString(strings.TrimSpace(a.Name), strings.TrimSpace(b.Name))
	})
	p.partners = slices.Insert(p.partners, i, partner)
}

func errorMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func (p *Panel) Partners() []domain.Partner {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.partners)
}

func (p *Panel) Feedback() Feedback {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.feedback
}

func (p *Panel) Adding() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.adding
}

func (p *Panel) Deleting(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.deleting[id]
}
