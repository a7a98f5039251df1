package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piecemeal-studio/piecemeal/internal/wizard"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

// shapeViewedMsg tells the app a shape was browsed, for the visitor
// profile markers.
type shapeViewedMsg struct {
	id string
}

type shapesModel struct {
	ctrl    *wizard.Controller
	cursor  int
	editing bool
	note    string
	frame   int
}

func newShapesModel(ctrl *wizard.Controller) shapesModel {
	return shapesModel{ctrl: ctrl}
}

func (m shapesModel) Update(msg tea.Msg) (shapesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		m.frame++
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m shapesModel) updateKeys(msg tea.KeyMsg) (shapesModel, tea.Cmd) {
	id := domain.ShapeCatalog[m.cursor].ID

	if m.editing {
		switch msg.String() {
		case "enter":
			m.ctrl.SetShapeMeaning(id, strings.TrimSpace(m.note))
			m.editing = false
			m.note = ""
		case "esc":
			m.editing = false
			m.note = ""
		default:
			m.note = editRune(m.note, msg.String())
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(domain.ShapeCatalog)-1 {
			m.cursor++
			return m, m.viewed()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			return m, m.viewed()
		}
	case " ":
		m.ctrl.ToggleShape(id)
	case "m":
		s := m.ctrl.Session()
		if s != nil && s.HasShape(id) {
			m.editing = true
			m.note = s.ShapeMeanings[id]
		}
	case "enter":
		s := m.ctrl.Session()
		if s != nil && len(s.SelectedShapes) > 0 {
			m.ctrl.Continue()
		}
	}
	return m, nil
}

func (m shapesModel) viewed() tea.Cmd {
	id := domain.ShapeCatalog[m.cursor].ID
	return func() tea.Msg { return shapeViewedMsg{id: id} }
}

func (m shapesModel) View() string {
	s := m.ctrl.Session()
	if s == nil {
		return " " + dimStyle.Render("no draft")
	}

	quota := domain.TierSpec(s.Tier).ShapeQuota

	var b strings.Builder
	count := fmt.Sprintf("%d/%d", len(s.SelectedShapes), quota)
	if len(s.SelectedShapes) >= quota {
		count = goldStyle.Render(count)
	} else {
		count = accentStyle.Render(count)
	}
	b.WriteString(" " + dimStyle.Render("Pick the shapes that tell your story") + "  " + count + "\n\n")

	for i, sh := range domain.ShapeCatalog {
		cursor := "  "
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
		}
		mark := metaStyle.Render("·")
		name := normalStyle.Render(sh.Name)
		if s.HasShape(sh.ID) {
			mark = okStyle.Render("✓")
			name = selectedStyle.Render(sh.Name)
		}
		line := fmt.Sprintf(" %s%s %-16s", cursor, mark, name)
		if note, ok := s.ShapeMeanings[sh.ID]; ok {
			line += "  " + metaStyle.Render(truncStr(note, 40))
		}
		b.WriteString(line + "\n")
	}

	if m.editing {
		b.WriteString("\n " + renderFormField("meaning:", m.note, "what this shape means to you", true, m.frame) + "\n")
	}
	return b.String()
}
