package session

import (
	"log/slog"
	"time"

	"github.com/piecemeal-studio/piecemeal/internal/store"
	"github.com/piecemeal-studio/piecemeal/pkg/domain"
)

// DefaultDebounce is the checkout write-coalescing window. Fast typing
// produces one write per pause, not one per keystroke.
const DefaultDebounce = 400 * time.Millisecond

// ProgressStore owns the checkout sub-flow draft. Writes are debounced
// (last edit wins); the record carries its own 24h expiry keyed on the
// last write time.
type ProgressStore struct {
	rec *store.DebouncedRecord[domain.CheckoutProgress]
	now func() time.Time
}

func NewProgressStore(s store.Store, log *slog.Logger, now func() time.Time, window time.Duration) *ProgressStore {
	rec := store.NewRecord(s, progressKey, log,
		store.WithMaxAge(ProgressTTL, func(v domain.CheckoutProgress) int64 { return v.Timestamp }),
		store.WithClock[domain.CheckoutProgress](now),
	)
	return &ProgressStore{
		rec: store.NewDebouncedRecord(rec, window),
		now: now,
	}
}

// Save stamps and schedules the draft for writing.
func (p *ProgressStore) Save(v domain.CheckoutProgress) {
	v.Timestamp = p.now().UnixMilli()
	p.rec.Save(v)
}

// Load returns the checkout draft, or nil when absent or expired.
func (p *ProgressStore) Load() *domain.CheckoutProgress {
	v, ok := p.rec.Load()
	if !ok {
		return nil
	}
	return &v
}

// Flush persists any pending edit immediately. Called before order
// submission so the draft on disk matches the screen.
func (p *ProgressStore) Flush() {
	p.rec.Flush()
}

// Clear drops the draft and any pending write. Called on successful
// submission and on explicit start-fresh.
func (p *ProgressStore) Clear() {
	p.rec.Clear()
}

// Close cancels the debounce timer without writing.
func (p *ProgressStore) Close() {
	p.rec.Close()
}
