package session

import "github.com/piecemeal-studio/piecemeal/pkg/domain"

// Plan computes the step a resumed customer lands on. The decision list
// runs most-advanced-first: presence of later-step data is taken as
// proof the earlier steps were completed. A draft holding later-step
// data without earlier-step data resumes at the most advanced inferable
// step, unvalidated.
func Plan(s *domain.PuzzleSession) domain.Step {
	switch {
	case s.OrderComplete:
		return domain.StepConfirmation
	case s.ShippingInfo != nil:
		return domain.StepCheckout
	case len(s.HintCards) > 0:
		return domain.StepPackaging
	case s.ImageChoice != domain.ImageNone && (s.PhotoURL != "" || len(s.ColorAssignments) > 0):
		return domain.StepHints
	case len(s.SelectedShapes) >= domain.TierSpec(s.Tier).ShapeQuota:
		return domain.StepImage
	case s.Tier != "":
		return domain.StepShapes
	default:
		return domain.StepTier
	}
}

// Resumable reports whether a loaded draft is worth resuming at all.
// A draft abandoned before any shape was picked starts the flow fresh.
func Resumable(s *domain.PuzzleSession) bool {
	return s != nil && len(s.SelectedShapes) > 0
}
