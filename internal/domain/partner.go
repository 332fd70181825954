package domain

import (
	"fmt"
	"strings"
)

type Partner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PartnerRecord is a raw row of the partners table. The table name is configurable, so
// the identifier may live in any of id, uuid or slug and may be numeric.
type PartnerRecord struct {
	ID   any `json:"id,omitempty"`
	UUID any `json:"uuid,omitempty"`
	Slug any `json:"slug,omitempty"`
	Name any `json:"name,omitempty"`
}

// NormalizePartner resolves the id as id, uuid, slug, trimmed name, then partner-<index>.
func NormalizePartner(rec *PartnerRecord, index int) Partner {
	fallback := fmt.Sprintf("partner-%d", index)
	if rec == nil {
		return Partner{ID: fallback}
	}

	name := strings.TrimSpace(stringify(rec.Name))

	for _, candidate := range []any{rec.ID, rec.UUID, rec.Slug} {
		if candidate != nil {
			return Partner{ID: stringify(candidate), Name: name}
		}
	}
	if name != "" {
		return Partner{ID: name, Name: name}
	}
	return Partner{ID: fallback, Name: name}
}

func NormalizePartners(recs []*PartnerRecord) []Partner {
	partners := make([]Partner, 0, len(recs))
	for i, rec := range recs {
		partners = append(partners, NormalizePartner(rec, i))
	}
	return partners
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; integral ids should not print as 1e+06
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprint(v)
	default:
		return fmt.Sprint(v)
	}
}
