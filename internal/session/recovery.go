package session

import "github.com/piecemeal-studio/piecemeal/pkg/domain"

// Banner is the recovery surface the presenter asks the UI to show.
type Banner int

const (
	BannerNone Banner = iota
	BannerAbandonedCart
	BannerWelcomeBack
)

func (b Banner) String() string {
	switch b {
	case BannerAbandonedCart:
		return "abandoned-cart"
	case BannerWelcomeBack:
		return "welcome-back"
	default:
		return "none"
	}
}

// Recovery is the presenter's full decision: which banner to request
// and whether a checkout sub-draft exists to resume into.
type Recovery struct {
	Banner         Banner
	ResumeCheckout bool
}

// DecideBanner selects the recovery surface. Pure and idempotent: it
// renders nothing and mutates nothing. Cart recovery outranks the
// generic welcome-back message.
func DecideBanner(s *domain.PuzzleSession, progress *domain.CheckoutProgress, visitCount int) Recovery {
	r := Recovery{ResumeCheckout: progress != nil}

	switch {
	case s != nil && s.ShippingInfo == nil && len(s.SelectedShapes) > 0:
		r.Banner = BannerAbandonedCart
	case visitCount > 1:
		r.Banner = BannerWelcomeBack
	default:
		r.Banner = BannerNone
	}
	return r
}
