// Package session owns everything the configurator persists between
// runs: the primary puzzle draft, the checkout sub-flow draft, the
// consent decision and the visitor profile, plus the pure logic that
// decides where a returning customer lands and which recovery surface
// to offer.
package session

import (
	"log/slog"
	"time"

	"github.com/piecemeal-studio/piecemeal/internal/store"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

// Storage keys. Each key has its own expiry clock; nothing shares an
// envelope format.
const (
	sessionKey  = "puzzle_session"
	progressKey = "checkout_progress"
	consentKey  = "cookie_consent"
	visitorKey  = "visitor_profile"
)

const (
	// SessionTTL is the draft's maximum age, measured from creation.
	SessionTTL = 24 * time.Hour
	// ProgressTTL is the checkout draft's maximum age, measured from
	// its last write. Independent of SessionTTL.
	ProgressTTL = 24 * time.Hour
	// ConsentTTL is how long a consent decision stands.
	ConsentTTL = 365 * 24 * time.Hour
)

// Repository owns the primary puzzle draft. A completed or expired
// draft loads as absent; callers cannot tell the difference and must
// not try.
type Repository struct {
	rec *store.Record[domain.PuzzleSession]
}

func NewRepository(s store.Store, log *slog.Logger, now func() time.Time) *Repository {
	return &Repository{
		rec: store.NewRecord(s, sessionKey, log,
			store.WithMaxAge(SessionTTL, func(v domain.PuzzleSession) int64 { return v.CreatedAt }),
			store.WithValidity(func(v domain.PuzzleSession) bool { return !v.OrderComplete }),
			store.WithClock[domain.PuzzleSession](now),
		),
	}
}

// Save persists the draft. Called write-through on every accepted
// mutation; storage failures are swallowed at the record layer.
func (r *Repository) Save(s *domain.PuzzleSession) {
	if s == nil {
		return
	}
	r.rec.Save(*s)
}

// Load returns the draft, or nil when there is nothing to resume.
func (r *Repository) Load() *domain.PuzzleSession {
	v, ok := r.rec.Load()
	if !ok {
		return nil
	}
	return &v
}

// Clear drops the draft. Best effort.
func (r *Repository) Clear() {
	r.rec.Clear()
}
