// Package client talks to the made-to-order workshop API. The
// configurator runs entirely on-device; this client is the single live
// boundary, used to submit a finished order and to send a partner
// invitation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

// SubmitOrderRequest is the payload for placing an order. It carries
// the full draft plus the checkout contact.
type SubmitOrderRequest struct {
	SessionID        string                `json:"session_id"`
	Tier             domain.Tier           `json:"tier"`
	Shapes           []string              `json:"shapes"`
	ShapeMeanings    map[string]string     `json:"shape_meanings,omitempty"`
	ImageChoice      domain.ImageChoice    `json:"image_choice"`
	PhotoURL         string                `json:"photo_url,omitempty"`
	ColorAssignments map[string]string     `json:"color_assignments,omitempty"`
	HintCards        []string              `json:"hint_cards,omitempty"`
	Packaging        domain.Packaging      `json:"packaging"`
	Shipping         domain.ShippingInfo   `json:"shipping"`
	Contact          domain.GuestContact   `json:"contact"`
	PriceCents       int                   `json:"price_cents"`
}

// OrderConfirmation is the workshop's acknowledgement of an order.
type OrderConfirmation struct {
	OrderRef   string `json:"order_ref"`
	ReceivedAt int64  `json:"received_at"`
}

// Client is the workshop API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SubmitOrder places the order. Only a nil error counts as a completed
// submission; the caller stays on checkout otherwise.
func (c *Client) SubmitOrder(ctx context.Context, req SubmitOrderRequest) (*OrderConfirmation, error) {
	var conf OrderConfirmation
	if err := c.post(ctx, "/api/orders", req, &conf); err != nil {
		return nil, fmt.Errorf("client.SubmitOrder: %w", err)
	}
	return &conf, nil
}

// SendInvite asks the workshop to deliver a partner invitation.
func (c *Client) SendInvite(ctx context.Context, invite domain.PartnerInvite) error {
	if err := c.post(ctx, "/api/invites", invite, nil); err != nil {
		return fmt.Errorf("client.SendInvite: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
