package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

func TestSubmitOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req SubmitOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.SessionID == "" || len(req.Shapes) == 0 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"error": "incomplete order"}) //nolint:errcheck
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(OrderConfirmation{ //nolint:errcheck
			OrderRef:   "PZ-7741",
			ReceivedAt: time.Now().UnixMilli(),
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	conf, err := c.SubmitOrder(context.Background(), SubmitOrderRequest{
		SessionID: "draft-1",
		Tier:      domain.TierClassic,
		Shapes:    []string{"heart", "star"},
		Shipping:  domain.ShippingInfo{Name: "R. Calder"},
	})
	if err != nil {
		t.Fatalf("SubmitOrder() error: %v", err)
	}
	if conf.OrderRef != "PZ-7741" {
		t.Errorf("OrderRef = %q, want %q", conf.OrderRef, "PZ-7741")
	}
}

func TestSubmitOrder_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "incomplete order"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.SubmitOrder(context.Background(), SubmitOrderRequest{})
	if err == nil {
		t.Fatal("expected error for rejected order")
	}
	if !IsStatus(err, http.StatusUnprocessableEntity) {
		t.Errorf("IsStatus(err, 422) = false, err = %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "incomplete order") {
		t.Errorf("error = %q, want it to contain 'incomplete order'", got)
	}
}

func TestSendInvite(t *testing.T) {
	var got domain.PartnerInvite
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/invites" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.SendInvite(context.Background(), domain.PartnerInvite{
		Code:  "inv-1",
		Email: "partner@example.com",
	})
	if err != nil {
		t.Fatalf("SendInvite() error: %v", err)
	}
	if got.Code != "inv-1" {
		t.Errorf("server received Code = %q, want 'inv-1'", got.Code)
	}
}

func TestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.SubmitOrder(context.Background(), SubmitOrderRequest{})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if got := err.Error(); !strings.Contains(got, "boom") {
		t.Errorf("error = %q, want it to contain 'boom'", got)
	}
	if !IsStatus(err, http.StatusInternalServerError) {
		t.Errorf("IsStatus(err, 500) = false, err = %v", err)
	}
}

func TestDoRequest_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Second) // slow server
		json.NewEncoder(w).Encode(OrderConfirmation{}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	_, err := c.SubmitOrder(ctx, SubmitOrderRequest{})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}
