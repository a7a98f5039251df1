package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/piecemeal-studio/piecemeal/internal/wizard"
	"github.com/piecemeal-studio/piecemeal/pkg/client"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

func partnerCtrl(t *testing.T) *wizard.Controller {
	t.Helper()
	ctrl := newCtrl(t)
	ctrl.ToggleShape("heart")
	ctrl.Continue() // tier -> shapes
	ctrl.Continue() // shapes -> partner
	if ctrl.Step() != domain.StepPartner {
		t.Fatalf("fixture: step = %v, want partner", ctrl.Step())
	}
	return ctrl
}

func TestPartnerInviteWithEmailSendsIt(t *testing.T) {
	var got domain.PartnerInvite
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	ctrl := partnerCtrl(t)
	m := newPartnerModel(ctrl, client.New(srv.URL), "https://piecemeal.example/i/")
	for _, k := range []string{"a", "@", "b", ".", "c"} {
		m, _ = m.Update(key(k))
	}
	m, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected a delivery command for an addressed invite")
	}

	inv := ctrl.Session().PartnerInvite
	if inv == nil {
		t.Fatal("expected invite recorded")
	}
	if inv.Email != "a@b.c" {
		t.Errorf("invite email = %q, want a@b.c", inv.Email)
	}
	if ctrl.Step() != domain.StepImage {
		t.Errorf("step = %v, want image after invite", ctrl.Step())
	}

	msg := cmd().(inviteSentMsg)
	if msg.err != nil {
		t.Fatalf("delivery error: %v", msg.err)
	}
	if got.Email != "a@b.c" {
		t.Errorf("server received email %q, want a@b.c", got.Email)
	}
	_ = m
}

func TestPartnerInviteWithoutEmailSkipsDelivery(t *testing.T) {
	ctrl := partnerCtrl(t)
	m := newPartnerModel(ctrl, nil, "https://piecemeal.example/i/")

	m, cmd := m.Update(key("enter"))
	if cmd != nil {
		t.Fatal("no email, no delivery command")
	}
	inv := ctrl.Session().PartnerInvite
	if inv == nil || inv.Code == "" {
		t.Fatal("expected a share-link invite with a code")
	}
	if ctrl.Step() != domain.StepImage {
		t.Errorf("step = %v, want image", ctrl.Step())
	}
	_ = m
}

func TestPartnerEscSkips(t *testing.T) {
	ctrl := partnerCtrl(t)
	m := newPartnerModel(ctrl, nil, "")

	m, _ = m.Update(key("esc"))
	if ctrl.Step() != domain.StepImage {
		t.Errorf("step = %v, want image after skip", ctrl.Step())
	}
	if ctrl.Session().PartnerInvite != nil {
		t.Error("skip must not record an invite")
	}
	_ = m
}
