package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piecemeal-studio/piecemeal/internal/wizard"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

type hintsModel struct {
	ctrl    *wizard.Controller
	cursor  int
	editing bool
	text    string
	frame   int
}

func newHintsModel(ctrl *wizard.Controller) hintsModel {
	return hintsModel{ctrl: ctrl}
}

func (m hintsModel) Update(msg tea.Msg) (hintsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		m.frame++
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg), nil
	}
	return m, nil
}

func (m hintsModel) updateKeys(msg tea.KeyMsg) hintsModel {
	s := m.ctrl.Session()
	if s == nil {
		return m
	}

	if m.editing {
		switch msg.String() {
		case "enter":
			if text := strings.TrimSpace(m.text); text != "" {
				m.ctrl.AddHintCard(text)
			}
			m.editing = false
			m.text = ""
		case "esc":
			m.editing = false
			m.text = ""
		default:
			m.text = editRune(m.text, msg.String())
		}
		return m
	}

	switch msg.String() {
	case "a":
		if len(s.HintCards) < domain.TierSpec(s.Tier).HintCardQuota {
			m.editing = true
		}
	case "j", "down":
		if m.cursor < len(s.HintCards)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "d":
		m.ctrl.RemoveHintCard(m.cursor)
		if n := len(m.ctrl.Session().HintCards); m.cursor >= n && m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		m.ctrl.Continue()
	}
	return m
}

func (m hintsModel) View() string {
	s := m.ctrl.Session()
	if s == nil {
		return " " + dimStyle.Render("no draft")
	}

	quota := domain.TierSpec(s.Tier).HintCardQuota

	var b strings.Builder
	b.WriteString(" " + dimStyle.Render("Hint cards guide the solver without giving it away") + "  " +
		accentStyle.Render(fmt.Sprintf("%d/%d", len(s.HintCards), quota)) + "\n\n")

	if len(s.HintCards) == 0 && !m.editing {
		b.WriteString(" " + metaStyle.Render("no hint cards yet — they are optional") + "\n")
	}
	for i, h := range s.HintCards {
		cursor := "  "
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
		}
		fmt.Fprintf(&b, " %s%s %s\n", cursor, goldStyle.Render(fmt.Sprintf("%d.", i+1)), normalStyle.Render(truncStr(h, 60)))
	}

	if m.editing {
		b.WriteString("\n " + renderFormField("hint:", m.text, "a nudge, not the answer", true, m.frame) + "\n")
	}
	return b.String()
}
