package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piecemeal-studio/piecemeal/internal/wizard"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

type imageModel struct {
	ctrl    *wizard.Controller
	cursor  int // index into the draft's selected shapes
	editing bool
	url     string
	frame   int
}

func newImageModel(ctrl *wizard.Controller) imageModel {
	return imageModel{ctrl: ctrl}
}

func (m imageModel) Update(msg tea.Msg) (imageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		m.frame++
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg), nil
	}
	return m, nil
}

func (m imageModel) updateKeys(msg tea.KeyMsg) imageModel {
	s := m.ctrl.Session()
	if s == nil {
		return m
	}

	if m.editing {
		switch msg.String() {
		case "enter":
			if url := strings.TrimSpace(m.url); url != "" {
				m.ctrl.ChoosePhoto(url)
			}
			m.editing = false
			m.url = ""
		case "esc":
			m.editing = false
			m.url = ""
		default:
			m.url = editRune(m.url, msg.String())
		}
		return m
	}

	switch msg.String() {
	case "p":
		m.editing = true
		m.url = s.PhotoURL
	case "j", "down":
		if m.cursor < len(s.SelectedShapes)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "h", "l", "left", "right":
		if m.cursor < len(s.SelectedShapes) {
			id := s.SelectedShapes[m.cursor]
			m.ctrl.AssignColor(id, m.cycle(s.ColorAssignments[id], msg.String()))
		}
	case "x":
		m.ctrl.ClearImage()
	case "enter":
		m.ctrl.Continue()
	}
	return m
}

// cycle walks the palette from the current color; an unassigned shape
// starts at the first entry.
func (m imageModel) cycle(current, key string) string {
	idx := -1
	for i, c := range shapePalette {
		if c == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shapePalette[0]
	}
	if key == "l" || key == "right" {
		return shapePalette[(idx+1)%len(shapePalette)]
	}
	return shapePalette[(idx-1+len(shapePalette))%len(shapePalette)]
}

func (m imageModel) View() string {
	s := m.ctrl.Session()
	if s == nil {
		return " " + dimStyle.Render("no draft")
	}

	var b strings.Builder
	b.WriteString(" " + dimStyle.Render("Decorate the puzzle face: a photo, or a color per shape") + "\n\n")

	if m.editing {
		b.WriteString(" " + renderFormField("photo url:", m.url, "https://...", true, m.frame) + "\n")
		return b.String()
	}

	switch s.ImageChoice {
	case domain.ImagePhoto:
		b.WriteString(" " + okStyle.Render("✓") + " " + normalStyle.Render("photo") + "  " + metaStyle.Render(truncStr(s.PhotoURL, 48)) + "\n\n")
	case domain.ImageColors:
		b.WriteString(" " + okStyle.Render("✓") + " " + normalStyle.Render("colors") + "\n\n")
	default:
		b.WriteString(" " + metaStyle.Render("nothing chosen yet") + "\n\n")
	}

	for i, id := range s.SelectedShapes {
		cursor := "  "
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
		}
		sw := metaStyle.Render("··")
		if c, ok := s.ColorAssignments[id]; ok {
			sw = swatch(c)
		}
		fmt.Fprintf(&b, " %s%s %s\n", cursor, sw, normalStyle.Render(domain.ShapeName(id)))
	}
	return b.String()
}
