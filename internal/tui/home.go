package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piecemeal-studio/piecemeal/internal/session"
	"github.com/piecemeal-studio/piecemeal/internal/wizard"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

type homeModel struct {
	ctrl    *wizard.Controller
	consent *session.ConsentStore

	// askConsent is resolved once at startup; answering hides the
	// prompt for a year or until the policy version changes.
	askConsent bool
}

func newHomeModel(ctrl *wizard.Controller, consent *session.ConsentStore) homeModel {
	return homeModel{
		ctrl:       ctrl,
		consent:    consent,
		askConsent: consent.Load() == nil,
	}
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.askConsent {
		switch key.String() {
		case "a":
			m.consent.Save(domain.ConsentPreferences{
				Necessary: true, Analytics: true, Marketing: true, Preferences: true,
			})
			m.askConsent = false
			return m, nil
		case "e":
			m.consent.Save(domain.ConsentPreferences{Necessary: true})
			m.askConsent = false
			return m, nil
		}
	}

	if key.String() == "enter" {
		m.ctrl.StartNew()
	}
	return m, nil
}

func (m homeModel) View() string {
	var b strings.Builder

	b.WriteString("\n " + normalStyle.Render("A keepsake puzzle, built from the shapes of your story.") + "\n")
	b.WriteString(" " + metaStyle.Render("pick a tier, choose your shapes, decorate, and we cut it by hand") + "\n\n")
	b.WriteString(" " + accentStyle.Render("enter") + " " + dimStyle.Render("to begin") + "\n")

	if m.askConsent {
		b.WriteString("\n " + bannerStyle.Render("We keep a small amount of data on this device to resume your work.") + "\n")
		b.WriteString(" " + helpEntry("a", "accept all") + "  " + helpEntry("e", "essential only") + "\n")
	}
	return b.String()
}
