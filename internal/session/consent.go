package session

import (
	"log/slog"
	"time"

	"github.com/piecemeal-studio/piecemeal/internal/store"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

// ConsentStore owns the consent decision. A decision recorded under an
// older policy version, or older than a year, loads as absent so the
// prompt shows again.
type ConsentStore struct {
	rec *store.Record[domain.ConsentRecord]
	now func() time.Time
}

func NewConsentStore(s store.Store, log *slog.Logger, now func() time.Time) *ConsentStore {
	return &ConsentStore{
		rec: store.NewRecord(s, consentKey, log,
			store.WithMaxAge(ConsentTTL, func(v domain.ConsentRecord) int64 { return v.Timestamp }),
			store.WithValidity(func(v domain.ConsentRecord) bool { return v.Version == domain.ConsentVersion }),
			store.WithClock[domain.ConsentRecord](now),
		),
		now: now,
	}
}

// Save stamps and versions the decision before writing.
func (c *ConsentStore) Save(prefs domain.ConsentPreferences) {
	c.rec.Save(domain.ConsentRecord{
		Preferences: prefs,
		Timestamp:   c.now().UnixMilli(),
		Version:     domain.ConsentVersion,
	})
}

// Load returns the current decision, or nil if the customer must be
// asked (again).
func (c *ConsentStore) Load() *domain.ConsentRecord {
	v, ok := c.rec.Load()
	if !ok {
		return nil
	}
	return &v
}

func (c *ConsentStore) Clear() {
	c.rec.Clear()
}
