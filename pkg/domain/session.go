package domain

import "time"

// ImageChoice discriminates how the finished puzzle face is decorated.
type ImageChoice string

const (
	ImageNone   ImageChoice = ""
	ImagePhoto  ImageChoice = "photo"
	ImageColors ImageChoice = "colors"
)

// PartnerInvite is an out-of-band invitation asking a partner to
// contribute shape meanings. A nil invite on the session means the
// customer skipped the step.
type PartnerInvite struct {
	Code      string `json:"code"`
	Email     string `json:"email,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// Packaging holds the box, seal and wrap pattern choices. It is always
// present on the session; zero values are the defaults shown until the
// customer reaches the packaging step.
type Packaging struct {
	Box     string `json:"box,omitempty"`
	Seal    string `json:"seal,omitempty"`
	Pattern string `json:"pattern,omitempty"`
}

// ShippingInfo is the delivery address collected at checkout. Its
// presence on a session means the customer reached checkout.
type ShippingInfo struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PuzzleSession is the in-progress puzzle draft. One draft exists per
// device at a time; it is persisted after every accepted mutation and
// resumed on the next launch until it expires or the order completes.
type PuzzleSession struct {
	ID               string            `json:"id"`
	Tier             Tier              `json:"tier"`
	SelectedShapes   []string          `json:"selected_shapes"`
	ShapeMeanings    map[string]string `json:"shape_meanings,omitempty"`
	PartnerInvite    *PartnerInvite    `json:"partner_invite,omitempty"`
	ImageChoice      ImageChoice       `json:"image_choice,omitempty"`
	PhotoURL         string            `json:"photo_url,omitempty"`
	ColorAssignments map[string]string `json:"color_assignments,omitempty"`
	HintCards        []string          `json:"hint_cards,omitempty"`
	Packaging        Packaging         `json:"packaging"`
	ShippingInfo     *ShippingInfo     `json:"shipping_info,omitempty"`
	OrderComplete    bool              `json:"order_complete"`
	CreatedAt        int64             `json:"created_at"`
	UpdatedAt        int64             `json:"updated_at"`
}

// NewPuzzleSession creates a fresh draft at the default tier.
func NewPuzzleSession(id string, now time.Time) *PuzzleSession {
	ms := now.UnixMilli()
	return &PuzzleSession{
		ID:        id,
		Tier:      TierClassic,
		CreatedAt: ms,
		UpdatedAt: ms,
	}
}

// Touch bumps UpdatedAt. Called by the controller on every mutation.
func (s *PuzzleSession) Touch(now time.Time) {
	s.UpdatedAt = now.UnixMilli()
}

// Age returns how long ago the draft was created.
func (s *PuzzleSession) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(s.CreatedAt))
}

// HasShape reports whether id is already among the selected shapes.
func (s *PuzzleSession) HasShape(id string) bool {
	for _, sh := range s.SelectedShapes {
		if sh == id {
			return true
		}
	}
	return false
}

// ImageChosen reports whether the image step produced a usable choice:
// the discriminator is set and the matching payload is present.
func (s *PuzzleSession) ImageChosen() bool {
	switch s.ImageChoice {
	case ImagePhoto:
		return s.PhotoURL != ""
	case ImageColors:
		return len(s.ColorAssignments) > 0
	default:
		return false
	}
}
