package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/piecemeal-studio/piecemeal/internal/session"
	"github.com/piecemeal-studio/piecemeal/internal/wizard"
	"github.com/piecemeal-studio/piecemeal/pkg/client"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

type checkoutField int

const (
	fieldEmail checkoutField = iota
	fieldContactName
	fieldOptIn
	fieldShipName
	fieldStreet
	fieldCity
	fieldPostal
	fieldCountry
	numCheckoutFields
)

var checkoutLabels = [numCheckoutFields]string{
	"email", "name", "updates", "recipient", "street", "city", "postal code", "country",
}

// orderSubmittedMsg carries the workshop's answer to a submission.
type orderSubmittedMsg struct {
	conf *client.OrderConfirmation
	err  error
}

type checkoutModel struct {
	ctrl     *wizard.Controller
	progress *session.ProgressStore
	client   *client.Client

	fields    [numCheckoutFields]string
	optIn     bool
	focus     checkoutField
	statusMsg string
	submitted bool
	frame     int
}

func newCheckoutModel(ctrl *wizard.Controller, progress *session.ProgressStore, c *client.Client) checkoutModel {
	m := checkoutModel{ctrl: ctrl, progress: progress, client: c}
	// A surviving checkout draft pre-fills the form where the customer
	// left off.
	if p := progress.Load(); p != nil {
		m.fields[fieldEmail] = p.Data.Email
		m.fields[fieldContactName] = p.Data.Name
		m.optIn = p.Data.OptIn
		if f := checkoutField(p.Step); f >= 0 && f < numCheckoutFields {
			m.focus = f
		}
	}
	return m
}

func (m checkoutModel) Update(msg tea.Msg) (checkoutModel, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		m.frame++
		return m, nil
	case orderSubmittedMsg:
		m.submitted = false
		if msg.err != nil {
			m.statusMsg = "submission failed: " + msg.err.Error()
		}
		return m, nil
	case tea.KeyMsg:
		if m.submitted {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m checkoutModel) updateKeys(msg tea.KeyMsg) (checkoutModel, tea.Cmd) {
	m.statusMsg = ""

	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "tab", "down":
		m.focus = (m.focus + 1) % numCheckoutFields
		m.saveProgress()
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numCheckoutFields) % numCheckoutFields
		m.saveProgress()
	case "enter":
		m.focus = (m.focus + 1) % numCheckoutFields
		m.saveProgress()
	case " ":
		if m.focus == fieldOptIn {
			m.optIn = !m.optIn
			m.saveProgress()
			return m, nil
		}
		m.fields[m.focus] = editRune(m.fields[m.focus], " ")
		m.saveProgress()
	default:
		if m.focus == fieldOptIn {
			return m, nil
		}
		if next := editRune(m.fields[m.focus], msg.String()); next != m.fields[m.focus] {
			m.fields[m.focus] = next
			m.saveProgress()
		}
	}
	return m, nil
}

// saveProgress hands the partial form to the debounced checkout draft.
func (m checkoutModel) saveProgress() {
	m.progress.Save(domain.CheckoutProgress{
		Step: int(m.focus),
		Data: domain.GuestContact{
			Email: m.fields[fieldEmail],
			Name:  m.fields[fieldContactName],
			OptIn: m.optIn,
		},
	})
}

func (m checkoutModel) submit() (checkoutModel, tea.Cmd) {
	s := m.ctrl.Session()
	if s == nil {
		return m, nil
	}

	shipping := domain.ShippingInfo{
		Name:       strings.TrimSpace(m.fields[fieldShipName]),
		Street:     strings.TrimSpace(m.fields[fieldStreet]),
		City:       strings.TrimSpace(m.fields[fieldCity]),
		PostalCode: strings.TrimSpace(m.fields[fieldPostal]),
		Country:    strings.TrimSpace(m.fields[fieldCountry]),
	}
	if shipping.Name == "" || shipping.Street == "" || shipping.City == "" ||
		shipping.PostalCode == "" || shipping.Country == "" {
		m.statusMsg = "all shipping fields are required"
		return m, nil
	}
	if strings.TrimSpace(m.fields[fieldEmail]) == "" {
		m.statusMsg = "email is required for the order confirmation"
		return m, nil
	}

	m.ctrl.SetShipping(shipping)
	// The pending debounced edit must hit disk before the live call.
	m.progress.Flush()

	req := client.SubmitOrderRequest{
		SessionID:        s.ID,
		Tier:             s.Tier,
		Shapes:           s.SelectedShapes,
		ShapeMeanings:    s.ShapeMeanings,
		ImageChoice:      s.ImageChoice,
		PhotoURL:         s.PhotoURL,
		ColorAssignments: s.ColorAssignments,
		HintCards:        s.HintCards,
		Packaging:        s.Packaging,
		Shipping:         shipping,
		Contact: domain.GuestContact{
			Email: strings.TrimSpace(m.fields[fieldEmail]),
			Name:  strings.TrimSpace(m.fields[fieldContactName]),
			OptIn: m.optIn,
		},
		PriceCents: domain.TierSpec(s.Tier).PriceCents,
	}

	m.submitted = true
	c := m.client
	return m, func() tea.Msg {
		conf, err := c.SubmitOrder(context.Background(), req)
		return orderSubmittedMsg{conf: conf, err: err}
	}
}

func (m checkoutModel) View() string {
	s := m.ctrl.Session()
	if s == nil {
		return " " + dimStyle.Render("no draft")
	}

	var b strings.Builder
	b.WriteString(" " + dimStyle.Render("Checkout") + "  " +
		goldStyle.Render(priceLabel(domain.TierSpec(s.Tier).PriceCents)) + "\n\n")

	for i := checkoutField(0); i < numCheckoutFields; i++ {
		if i == fieldOptIn {
			mark := metaStyle.Render("[ ]")
			if m.optIn {
				mark = okStyle.Render("[x]")
			}
			style := dimStyle
			if i == m.focus {
				style = inputPromptStyle
			}
			fmt.Fprintf(&b, " %s %s %s\n", style.Render(checkoutLabels[i]+":"), mark,
				metaStyle.Render("(space to toggle)"))
			continue
		}
		b.WriteString(" " + renderFormField(checkoutLabels[i]+":", m.fields[i], "", i == m.focus, m.frame) + "\n")
	}

	b.WriteString("\n")
	if m.submitted {
		b.WriteString(" " + dimStyle.Render("submitting order..."))
	} else if m.statusMsg != "" {
		b.WriteString(" " + warnStyle.Render(m.statusMsg))
	}
	return b.String()
}
