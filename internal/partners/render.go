package partners

import (
	"fmt"
	"io"
	"strings"
)

// DisplayName is the trimmed name, or a placeholder when it is blank.
func DisplayName(p string) string {
	if name := strings.TrimSpace(p); name != "" {
		return name
	}
	return MsgUnknownName
}

// Render writes the panel the way the public page shows it: a loading line, an error
// with the retry control, the joined names or the empty-list notice.
func (p *Panel) Render(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s\n\n", HeadingKicker, HeadingTitle)

	switch {
	case p.loading:
		sb.WriteString(MsgLoading + "\n")
	case p.loadErr != "":
		fmt.Fprintf(&sb, "%s\n[%s]\n", p.loadErr, RetryLabel)
	case len(p.partners) == 0:
		sb.WriteString(MsgEmpty + "\n")
	default:
		names := make([]string, len(p.partners))
		for i, partner := range p.partners {
			names[i] = DisplayName(partner.Name)
		}
		sb.WriteString(strings.Join(names, ListSeparator) + "\n")
	}

	if p.feedback.Message != "" {
		fmt.Fprintf(&sb, "\n%s\n", p.feedback.Message)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderAdmin lists every partner with its id, marking rows with a delete in flight.
func (p *Panel) RenderAdmin(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var sb strings.Builder
	for _, partner := range p.partners {
		state := "[Șterge]"
		if p.deleting[partner.ID] {
			state = "[Se șterge...]"
		}
		fmt.Fprintf(&sb, "%s  %s  %s\n", partner.ID, DisplayName(partner.Name), state)
	}
	if len(p.partners) == 0 && p.loadErr == "" {
		sb.WriteString(MsgEmpty + "\n")
	}
	if p.loadErr != "" {
		fmt.Fprintf(&sb, "%s\n", p.loadErr)
	}
	if p.feedback.Message != "" {
		fmt.Fprintf(&sb, "%s\n", p.feedback.Message)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
