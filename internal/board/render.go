package board

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Render writes v as plain text. Desktop tables are tab-aligned; the mobile accordion
// lists each day with its hours underneath.
func Render(w io.Writer, v View) error {
	var sb strings.Builder

	if v.Status != "" {
		fmt.Fprintf(&sb, "! %s\n\n", v.Status)
	}

	switch v.Mode {
	case Mobile:
		fmt.Fprintf(&sb, "%s\n", v.ActiveClass)
		for _, day := range v.Days {
			fmt.Fprintf(&sb, "▸ %s\n", day.Day)
			for _, row := range day.Rows {
				fmt.Fprintf(&sb, "    %s  %s\n", row.Label, row.Cells[0].Text)
			}
		}
	default:
		tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		for _, group := range v.Groups {
			fmt.Fprintf(tw, "== %s ==\n", group.Title)
			for _, class := range group.Classes {
				marker := ""
				if class.Scroll {
					marker = " ◂"
				}
				fmt.Fprintf(tw, "\n%s%s\n", class.Class, marker)
				fmt.Fprintf(tw, "Ora\t%s\t\n", strings.Join(class.Days, "\t"))
				for _, row := range class.Rows {
					texts := make([]string, len(row.Cells))
					for i, c := range row.Cells {
						texts[i] = c.Text
					}
					fmt.Fprintf(tw, "%s\t%s\t\n", row.Label, strings.Join(texts, "\t"))
				}
			}
			fmt.Fprintln(tw)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if modal := RenderModal(v.State, v.ModalLabel); modal != "" {
		sb.WriteString("\n")
		sb.WriteString(modal)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderModal draws the edit modal for Editing and Saving states; Idle renders nothing.
func RenderModal(s State, timeLabel string) string {
	var sb strings.Builder
	switch s := s.(type) {
	case Editing:
		writeModal(&sb, s.Cell.ClassName, s.Cell.Day, timeLabel, s.Form, "Salvează")
		if s.Status != "" {
			fmt.Fprintf(&sb, "  %s\n", s.Status)
		}
	case Saving:
		writeModal(&sb, s.Cell.ClassName, s.Cell.Day, timeLabel, s.Form, "Se salvează...")
	}
	return sb.String()
}

func writeModal(sb *strings.Builder, class, day, timeLabel string, form Form, submit string) {
	fmt.Fprintf(sb, "┌ %s\n", class)
	fmt.Fprintf(sb, "│ %s · %s\n", day, timeLabel)
	fmt.Fprintf(sb, "│ Activitate: %s\n", form.Activity)
	fmt.Fprintf(sb, "│ Profesor responsabil: %s\n", form.Professor)
	fmt.Fprintf(sb, "└ [Golește] [%s] [Închide]\n", submit)
}
