package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/piecemeal-studio/piecemeal/internal/session"
	"github.com/piecemeal-studio/piecemeal/internal/store"
	"github.com/piecemeal-studio/piecemeal/internal/wizard"
	"github.com/piecemeal-studio/piecemeal/pkg/client"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

type checkoutFixture struct {
	ctrl     *wizard.Controller
	progress *session.ProgressStore
}

func newCheckoutFixture(t *testing.T) checkoutFixture {
	t.Helper()
	mem := store.NewMemStore()
	now := func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	log := discard()

	repo := session.NewRepository(mem, log, now)
	progress := session.NewProgressStore(mem, log, now, time.Millisecond)
	t.Cleanup(progress.Close)

	ctrl := wizard.New(repo, progress, func() string { return "draft-1" }, now)
	ctrl.StartNew()
	ctrl.ToggleShape("heart")
	ctrl.ToggleShape("star")
	return checkoutFixture{ctrl: ctrl, progress: progress}
}

func TestCheckoutTypingSavesProgress(t *testing.T) {
	fx := newCheckoutFixture(t)
	m := newCheckoutModel(fx.ctrl, fx.progress, nil)

	for _, k := range []string{"m", "e", "@", "x", ".", "c", "o"} {
		m, _ = m.Update(key(k))
	}
	fx.progress.Flush()

	p := fx.progress.Load()
	if p == nil {
		t.Fatal("expected a checkout draft after typing")
	}
	if p.Data.Email != "me@x.co" {
		t.Errorf("draft email = %q, want %q", p.Data.Email, "me@x.co")
	}
}

func TestCheckoutPrefillsFromProgress(t *testing.T) {
	fx := newCheckoutFixture(t)
	fx.progress.Save(domain.CheckoutProgress{
		Step: int(fieldContactName),
		Data: domain.GuestContact{Email: "kept@example.com", Name: "R", OptIn: true},
	})
	fx.progress.Flush()

	m := newCheckoutModel(fx.ctrl, fx.progress, nil)
	if m.fields[fieldEmail] != "kept@example.com" {
		t.Errorf("prefilled email = %q, want kept@example.com", m.fields[fieldEmail])
	}
	if !m.optIn {
		t.Error("expected opt-in restored")
	}
	if m.focus != fieldContactName {
		t.Errorf("focus = %v, want the saved field", m.focus)
	}
}

func TestCheckoutOptInToggle(t *testing.T) {
	fx := newCheckoutFixture(t)
	m := newCheckoutModel(fx.ctrl, fx.progress, nil)
	m.focus = fieldOptIn

	m, _ = m.Update(key(" "))
	if !m.optIn {
		t.Fatal("expected opt-in on after toggle")
	}
	m, _ = m.Update(key(" "))
	if m.optIn {
		t.Fatal("expected opt-in off after second toggle")
	}
}

func TestCheckoutSubmitRequiresShipping(t *testing.T) {
	fx := newCheckoutFixture(t)
	m := newCheckoutModel(fx.ctrl, fx.progress, nil)
	m.fields[fieldEmail] = "me@example.com"

	m, cmd := m.Update(key("ctrl+s"))
	if cmd != nil {
		t.Fatal("expected no submission with an empty address")
	}
	if m.statusMsg == "" {
		t.Error("expected a validation message")
	}
	if fx.ctrl.Session().ShippingInfo != nil {
		t.Error("shipping must not be recorded on a failed validation")
	}
}

func TestCheckoutSubmitPlacesOrder(t *testing.T) {
	var got client.SubmitOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(client.OrderConfirmation{OrderRef: "PZ-1"}) //nolint:errcheck
	}))
	defer srv.Close()

	fx := newCheckoutFixture(t)
	m := newCheckoutModel(fx.ctrl, fx.progress, client.New(srv.URL))
	m.fields[fieldEmail] = "me@example.com"
	m.fields[fieldShipName] = "R. Calder"
	m.fields[fieldStreet] = "1 Pier Lane"
	m.fields[fieldCity] = "Tidemouth"
	m.fields[fieldPostal] = "TM1 4QX"
	m.fields[fieldCountry] = "UK"

	m, cmd := m.Update(key("ctrl+s"))
	if cmd == nil {
		t.Fatal("expected a submission command")
	}
	if !m.submitted {
		t.Error("expected submitting state")
	}
	if fx.ctrl.Session().ShippingInfo == nil {
		t.Fatal("expected shipping recorded before the live call")
	}

	msg := cmd()
	sub, ok := msg.(orderSubmittedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want orderSubmittedMsg", msg)
	}
	if sub.err != nil {
		t.Fatalf("submission error: %v", sub.err)
	}
	if sub.conf.OrderRef != "PZ-1" {
		t.Errorf("order ref = %q, want PZ-1", sub.conf.OrderRef)
	}
	if got.SessionID != "draft-1" || len(got.Shapes) != 2 {
		t.Errorf("request carried session %q with %d shapes, want draft-1 with 2", got.SessionID, len(got.Shapes))
	}
	if got.PriceCents != domain.TierSpec(domain.TierClassic).PriceCents {
		t.Errorf("price = %d, want classic tier price", got.PriceCents)
	}
}

func TestCheckoutSubmitFailureStaysOnCheckout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "incomplete order"}) //nolint:errcheck
	}))
	defer srv.Close()

	fx := newCheckoutFixture(t)
	m := newCheckoutModel(fx.ctrl, fx.progress, client.New(srv.URL))
	m.fields[fieldEmail] = "me@example.com"
	m.fields[fieldShipName] = "R"
	m.fields[fieldStreet] = "s"
	m.fields[fieldCity] = "c"
	m.fields[fieldPostal] = "p"
	m.fields[fieldCountry] = "u"

	m, cmd := m.Update(key("ctrl+s"))
	if cmd == nil {
		t.Fatal("expected a submission command")
	}
	msg := cmd().(orderSubmittedMsg)
	if msg.err == nil {
		t.Fatal("expected a submission error")
	}

	m, _ = m.Update(msg)
	if m.submitted {
		t.Error("expected submitting state cleared")
	}
	if !strings.Contains(m.statusMsg, "failed") {
		t.Errorf("status = %q, want a failure message", m.statusMsg)
	}
}
