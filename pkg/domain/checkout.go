package domain

// GuestContact is the partial contact data typed into the checkout form.
type GuestContact struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	OptIn bool   `json:"opt_in,omitempty"`
}

// CheckoutProgress is the secondary draft scoped to the checkout
// sub-flow. It is overwritten on every edit (last write wins) and
// deleted on successful submission or an explicit start-fresh.
type CheckoutProgress struct {
	Step      int          `json:"step"`
	Data      GuestContact `json:"data"`
	Timestamp int64        `json:"timestamp"`
}
