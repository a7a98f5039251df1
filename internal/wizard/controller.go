// Package wizard is the configurator's state machine. The controller is
// the only writer of the puzzle draft: every accepted mutation bumps
// the draft's UpdatedAt and is written through to the repository, and
// every transition is checked against the explicit edge set. Rendering
// and pricing read the draft as a snapshot and never mutate it.
package wizard

import (
	"time"

	"github.com/piecemeal-studio/piecemeal/internal/session"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

// forward is the happy-path edge set. checkout → confirmation is absent
// on purpose: that edge only exists through CompleteOrder.
var forward = map[domain.Step]domain.Step{
	domain.StepHome:      domain.StepTier,
	domain.StepTier:      domain.StepShapes,
	domain.StepShapes:    domain.StepPartner,
	domain.StepPartner:   domain.StepImage,
	domain.StepImage:     domain.StepHints,
	domain.StepHints:     domain.StepPackaging,
	domain.StepPackaging: domain.StepCheckout,
}

// backward is the designated back-edge set. partner and confirmation
// have no back edge; home is reached from anywhere via StartOver.
var backward = map[domain.Step]domain.Step{
	domain.StepShapes:    domain.StepTier,
	domain.StepImage:     domain.StepShapes,
	domain.StepHints:     domain.StepImage,
	domain.StepPackaging: domain.StepHints,
	domain.StepCheckout:  domain.StepPackaging,
}

// Controller drives the configurator flow and owns the draft.
type Controller struct {
	repo     *session.Repository
	progress *session.ProgressStore
	newID    func() string
	now      func() time.Time

	step    domain.Step
	session *domain.PuzzleSession
}

// New builds the controller and resolves the initial step: home for a
// fresh start, or the planned resumption step when a draft with at
// least one selected shape survives.
func New(repo *session.Repository, progress *session.ProgressStore, newID func() string, now func() time.Time) *Controller {
	c := &Controller{
		repo:     repo,
		progress: progress,
		newID:    newID,
		now:      now,
		step:     domain.StepHome,
	}
	if s := repo.Load(); session.Resumable(s) {
		c.session = s
		c.step = session.Plan(s)
	}
	return c
}

// Step returns the current step.
func (c *Controller) Step() domain.Step {
	return c.step
}

// Session returns the current draft for readers. Treat it as a render-
// time snapshot; all mutation goes through controller operations.
func (c *Controller) Session() *domain.PuzzleSession {
	return c.session
}

// guard reports whether a transition into step is permitted. Every step
// except home and confirmation needs a draft. Violations are no-ops,
// not errors: rapid input can race the mount that creates the draft.
func (c *Controller) guard(step domain.Step) bool {
	switch step {
	case domain.StepHome, domain.StepConfirmation:
		return true
	default:
		return c.session != nil
	}
}

// mutate applies fn to the draft, stamps it and writes it through.
// Without a draft it is a silent no-op.
func (c *Controller) mutate(fn func(*domain.PuzzleSession)) {
	if c.session == nil {
		return
	}
	fn(c.session)
	c.session.Touch(c.now())
	c.repo.Save(c.session)
}

// StartNew begins a fresh draft. Only fires from home, and only when no
// draft is being resumed.
func (c *Controller) StartNew() {
	if c.step != domain.StepHome || c.session != nil {
		return
	}
	c.session = domain.NewPuzzleSession(c.newID(), c.now())
	c.repo.Save(c.session)
	c.step = domain.StepTier
}

// Continue advances along the happy-path edge from the current step.
func (c *Controller) Continue() {
	next, ok := forward[c.step]
	if !ok || !c.guard(next) {
		return
	}
	if c.step == domain.StepHome {
		// home → tier goes through StartNew so a draft exists.
		return
	}
	c.step = next
}

// Back follows the designated back edge, if one exists.
func (c *Controller) Back() {
	prev, ok := backward[c.step]
	if !ok || !c.guard(prev) {
		return
	}
	c.step = prev
}

// StartOver abandons everything: draft, checkout sub-draft, position.
func (c *Controller) StartOver() {
	c.session = nil
	c.repo.Clear()
	c.progress.Clear()
	c.step = domain.StepHome
}

// SelectTier picks a tier. A same-state mutation: moving on to shapes
// is a separate, explicit Continue.
func (c *Controller) SelectTier(t domain.Tier) {
	if !domain.ValidTier(t) {
		return
	}
	c.mutate(func(s *domain.PuzzleSession) {
		s.Tier = t
	})
}

// ToggleShape adds or removes a catalog shape. Adding past the tier's
// quota is refused; removing a shape drops its meaning note too.
func (c *Controller) ToggleShape(id string) {
	if !domain.ValidShape(id) || c.session == nil {
		return
	}
	if !c.session.HasShape(id) && len(c.session.SelectedShapes) >= domain.TierSpec(c.session.Tier).ShapeQuota {
		return
	}
	c.mutate(func(s *domain.PuzzleSession) {
		if s.HasShape(id) {
			kept := s.SelectedShapes[:0]
			for _, sh := range s.SelectedShapes {
				if sh != id {
					kept = append(kept, sh)
				}
			}
			s.SelectedShapes = kept
			delete(s.ShapeMeanings, id)
			return
		}
		s.SelectedShapes = append(s.SelectedShapes, id)
	})
}

// SetShapeMeaning attaches a free-text note to a selected shape. An
// empty note removes the entry.
func (c *Controller) SetShapeMeaning(id, note string) {
	if c.session == nil || !c.session.HasShape(id) {
		return
	}
	c.mutate(func(s *domain.PuzzleSession) {
		if note == "" {
			delete(s.ShapeMeanings, id)
			return
		}
		if s.ShapeMeanings == nil {
			s.ShapeMeanings = map[string]string{}
		}
		s.ShapeMeanings[id] = note
	})
}

// CreatePartnerInvite records the invite and moves on to the image
// step. Invite-created and skip land in the same place.
func (c *Controller) CreatePartnerInvite(email string) {
	if c.step != domain.StepPartner || c.session == nil {
		return
	}
	c.mutate(func(s *domain.PuzzleSession) {
		s.PartnerInvite = &domain.PartnerInvite{
			Code:      c.newID(),
			Email:     email,
			CreatedAt: c.now().UnixMilli(),
		}
	})
	c.step = domain.StepImage
}

// SkipPartner leaves the invite absent and moves on.
func (c *Controller) SkipPartner() {
	if c.step != domain.StepPartner || c.session == nil {
		return
	}
	c.step = domain.StepImage
}

// ChoosePhoto selects the photo decoration. The color payload is
// dropped so payload and discriminator agree.
func (c *Controller) ChoosePhoto(url string) {
	if url == "" {
		return
	}
	c.mutate(func(s *domain.PuzzleSession) {
		s.ImageChoice = domain.ImagePhoto
		s.PhotoURL = url
		s.ColorAssignments = nil
	})
}

// AssignColor selects color-per-shape decoration and assigns one color.
func (c *Controller) AssignColor(shapeID, color string) {
	if c.session == nil || !c.session.HasShape(shapeID) || color == "" {
		return
	}
	c.mutate(func(s *domain.PuzzleSession) {
		s.ImageChoice = domain.ImageColors
		s.PhotoURL = ""
		if s.ColorAssignments == nil {
			s.ColorAssignments = map[string]string{}
		}
		s.ColorAssignments[shapeID] = color
	})
}

// ClearImage resets the image step.
func (c *Controller) ClearImage() {
	c.mutate(func(s *domain.PuzzleSession) {
		s.ImageChoice = domain.ImageNone
		s.PhotoURL = ""
		s.ColorAssignments = nil
	})
}

// AddHintCard appends a hint card, bounded by the tier's quota.
func (c *Controller) AddHintCard(text string) {
	if text == "" || c.session == nil {
		return
	}
	if len(c.session.HintCards) >= domain.TierSpec(c.session.Tier).HintCardQuota {
		return
	}
	c.mutate(func(s *domain.PuzzleSession) {
		s.HintCards = append(s.HintCards, text)
	})
}

// RemoveHintCard deletes the hint card at index i.
func (c *Controller) RemoveHintCard(i int) {
	if c.session == nil || i < 0 || i >= len(c.session.HintCards) {
		return
	}
	c.mutate(func(s *domain.PuzzleSession) {
		s.HintCards = append(s.HintCards[:i], s.HintCards[i+1:]...)
	})
}

// SetPackaging replaces the box/seal/pattern choices.
func (c *Controller) SetPackaging(p domain.Packaging) {
	c.mutate(func(s *domain.PuzzleSession) {
		s.Packaging = p
	})
}

// SetShipping records the delivery address.
func (c *Controller) SetShipping(info domain.ShippingInfo) {
	c.mutate(func(s *domain.PuzzleSession) {
		s.ShippingInfo = &info
	})
}

// CompleteOrder is the only path from checkout to confirmation. The
// caller invokes it after the live submission succeeded; the completed
// draft is cleared immediately and can never be resumed.
func (c *Controller) CompleteOrder() {
	if c.step != domain.StepCheckout || c.session == nil {
		return
	}
	c.session.OrderComplete = true
	c.session.Touch(c.now())
	c.repo.Clear()
	c.progress.Clear()
	c.step = domain.StepConfirmation
}
