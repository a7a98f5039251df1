package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piecemeal-studio/piecemeal/internal/wizard"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

// tierViewedMsg tells the app a tier was browsed, for the visitor
// profile markers.
type tierViewedMsg struct {
	tier domain.Tier
}

type tierModel struct {
	ctrl   *wizard.Controller
	cursor int
}

func newTierModel(ctrl *wizard.Controller) tierModel {
	return tierModel{ctrl: ctrl}
}

func (m tierModel) Update(msg tea.Msg) (tierModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "j", "down":
		if m.cursor < len(domain.Tiers)-1 {
			m.cursor++
			return m, m.viewed()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			return m, m.viewed()
		}
	case " ":
		m.ctrl.SelectTier(domain.Tiers[m.cursor])
	case "enter":
		m.ctrl.SelectTier(domain.Tiers[m.cursor])
		m.ctrl.Continue()
	}
	return m, nil
}

func (m tierModel) viewed() tea.Cmd {
	t := domain.Tiers[m.cursor]
	return func() tea.Msg { return tierViewedMsg{tier: t} }
}

func (m tierModel) View() string {
	var b strings.Builder

	b.WriteString(" " + dimStyle.Render("Choose a tier for your puzzle") + "\n\n")

	current := domain.Tier("")
	if s := m.ctrl.Session(); s != nil {
		current = s.Tier
	}

	for i, t := range domain.Tiers {
		cfg := domain.TierSpec(t)
		cursor := "  "
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
		}
		mark := " "
		if t == current {
			mark = okStyle.Render("✓")
		}
		name := TierStyle(t).Render(string(t))
		meta := metaStyle.Render(fmt.Sprintf("%d shapes · %d hint cards · %s",
			cfg.ShapeQuota, cfg.HintCardQuota, priceLabel(cfg.PriceCents)))
		fmt.Fprintf(&b, " %s%s %-24s %s\n", cursor, mark, name, meta)
	}

	b.WriteString("\n " + metaStyle.Render("every tier includes the full shape catalog"))
	return b.String()
}
