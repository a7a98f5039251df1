package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piecemeal-studio/piecemeal/internal/wizard"
)

// Packaging options, in display order. The first entry of each list is
// the default shown for an untouched draft.
var (
	boxOptions     = []string{"kraft", "walnut", "linen"}
	sealOptions    = []string{"wax", "ribbon", "none"}
	patternOptions = []string{"plain", "constellation", "botanical", "tide"}
)

type packagingModel struct {
	ctrl *wizard.Controller
	row  int // 0 box, 1 seal, 2 pattern
}

func newPackagingModel(ctrl *wizard.Controller) packagingModel {
	return packagingModel{ctrl: ctrl}
}

func (m packagingModel) Update(msg tea.Msg) (packagingModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "j", "down", "tab":
		m.row = (m.row + 1) % 3
	case "k", "up", "shift+tab":
		m.row = (m.row + 2) % 3
	case "h", "l", "left", "right":
		m.cycleRow(key.String())
	case "enter":
		m.ctrl.Continue()
	}
	return m, nil
}

func (m packagingModel) cycleRow(key string) {
	s := m.ctrl.Session()
	if s == nil {
		return
	}
	p := s.Packaging
	switch m.row {
	case 0:
		p.Box = cycleOption(boxOptions, p.Box, key)
	case 1:
		p.Seal = cycleOption(sealOptions, p.Seal, key)
	case 2:
		p.Pattern = cycleOption(patternOptions, p.Pattern, key)
	}
	m.ctrl.SetPackaging(p)
}

func cycleOption(opts []string, current, key string) string {
	idx := 0
	for i, o := range opts {
		if o == current {
			idx = i
			break
		}
	}
	if key == "l" || key == "right" {
		return opts[(idx+1)%len(opts)]
	}
	return opts[(idx-1+len(opts))%len(opts)]
}

func (m packagingModel) View() string {
	s := m.ctrl.Session()
	if s == nil {
		return " " + dimStyle.Render("no draft")
	}

	display := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}

	rows := []struct {
		label string
		value string
	}{
		{"box", display(s.Packaging.Box, boxOptions[0])},
		{"seal", display(s.Packaging.Seal, sealOptions[0])},
		{"pattern", display(s.Packaging.Pattern, patternOptions[0])},
	}

	var b strings.Builder
	b.WriteString(" " + dimStyle.Render("How the puzzle arrives") + "\n\n")
	for i, r := range rows {
		cursor := "  "
		style := metaStyle
		if i == m.row {
			cursor = accentStyle.Render("> ")
			style = selectedStyle
		}
		fmt.Fprintf(&b, " %s%s: %s  %s\n", cursor, style.Render(r.label),
			goldStyle.Render(r.value), metaStyle.Render("(h/l to cycle)"))
	}
	return b.String()
}
