package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/piecemeal-studio/piecemeal/internal/wizard"
	"github.com/piecemeal-studio/piecemeal/pkg/client"
)

// inviteSentMsg carries the result of the invite delivery request.
type inviteSentMsg struct {
	email string
	err   error
}

type partnerModel struct {
	ctrl       *wizard.Controller
	client     *client.Client
	inviteBase string
	email      string
	frame      int
}

func newPartnerModel(ctrl *wizard.Controller, c *client.Client, inviteBase string) partnerModel {
	return partnerModel{ctrl: ctrl, client: c, inviteBase: inviteBase}
}

func (m partnerModel) Update(msg tea.Msg) (partnerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		m.frame++
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m.invite()
		case "esc":
			m.ctrl.SkipPartner()
			m.email = ""
			return m, nil
		default:
			m.email = editRune(m.email, msg.String())
		}
	}
	return m, nil
}

// invite records the invitation, copies the share link and hands
// delivery to the workshop. Skip and invite land on the same next step.
func (m partnerModel) invite() (partnerModel, tea.Cmd) {
	email := strings.TrimSpace(m.email)
	m.ctrl.CreatePartnerInvite(email)

	s := m.ctrl.Session()
	if s == nil || s.PartnerInvite == nil {
		return m, nil
	}
	inv := *s.PartnerInvite
	clipboard.WriteAll(m.inviteBase + inv.Code) //nolint:errcheck // best-effort copy

	m.email = ""
	if inv.Email == "" {
		return m, nil
	}
	c := m.client
	return m, func() tea.Msg {
		err := c.SendInvite(context.Background(), inv)
		return inviteSentMsg{email: inv.Email, err: err}
	}
}

func (m partnerModel) View() string {
	var b strings.Builder

	b.WriteString(" " + dimStyle.Render("Invite a partner to add their own shape meanings") + "\n\n")
	b.WriteString(" " + renderFormField("partner email:", m.email, "leave empty for a share link only", true, m.frame) + "\n\n")
	b.WriteString(" " + metaStyle.Render("the share link is copied to your clipboard either way"))
	return b.String()
}
