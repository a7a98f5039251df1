package session

import (
	"log/slog"
	"time"

	"github.com/piecemeal-studio/piecemeal/internal/store"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

// VisitorStore owns the long-lived personalization record. It never
// expires; the recovery logic reads visit counts from it and the
// entrypoint bumps the count once per run.
type VisitorStore struct {
	rec *store.Record[domain.VisitorProfile]
	now func() time.Time
}

func NewVisitorStore(s store.Store, log *slog.Logger, now func() time.Time) *VisitorStore {
	return &VisitorStore{
		rec: store.NewRecord[domain.VisitorProfile](s, visitorKey, log),
		now: now,
	}
}

// BumpVisit increments the visit count and returns the updated profile.
func (v *VisitorStore) BumpVisit() domain.VisitorProfile {
	profile, _ := v.rec.Load()
	profile.VisitCount++
	profile.LastVisit = v.now().UnixMilli()
	v.rec.Save(profile)
	return profile
}

// Load returns the profile; a missing record is a zero profile.
func (v *VisitorStore) Load() domain.VisitorProfile {
	profile, _ := v.rec.Load()
	return profile
}

// Save persists browsing markers (viewed tiers/shapes, abandonment).
func (v *VisitorStore) Save(profile domain.VisitorProfile) {
	v.rec.Save(profile)
}
