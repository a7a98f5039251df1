package store

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Record wraps one persisted value with an expiry and validity policy.
// Absent keys, corrupt JSON, stale records and records failing the
// validity predicate all load as simple absence; save and clear
// failures are logged and swallowed. The worst outcome of any storage
// failure is a fresh start, never a crash.
type Record[T any] struct {
	store  Store
	key    string
	maxAge time.Duration
	stamp  func(T) int64
	valid  func(T) bool
	now    func() time.Time
	log    *slog.Logger
}

// RecordOption configures a Record.
type RecordOption[T any] func(*Record[T])

// WithMaxAge expires records older than maxAge. The age is measured
// against the millisecond timestamp extracted by stamp, so the wire
// format stays a plain JSON object with no envelope.
func WithMaxAge[T any](maxAge time.Duration, stamp func(T) int64) RecordOption[T] {
	return func(r *Record[T]) {
		r.maxAge = maxAge
		r.stamp = stamp
	}
}

// WithValidity adds a business condition a loaded value must satisfy,
// e.g. "order not yet completed".
func WithValidity[T any](valid func(T) bool) RecordOption[T] {
	return func(r *Record[T]) {
		r.valid = valid
	}
}

// WithClock injects the time source. Tests use this to cross TTL
// boundaries without sleeping.
func WithClock[T any](now func() time.Time) RecordOption[T] {
	return func(r *Record[T]) {
		r.now = now
	}
}

func NewRecord[T any](s Store, key string, log *slog.Logger, opts ...RecordOption[T]) *Record[T] {
	r := &Record[T]{
		store: s,
		key:   key,
		now:   time.Now,
		log:   log,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r
}

// Load reads and decodes the value. The caller cannot distinguish
// why a record is absent; every failure mode is (zero, false).
func (r *Record[T]) Load() (T, bool) {
	var zero T

	data, ok, err := r.store.Get(r.key)
	if err != nil {
		r.log.Warn("record load failed", "key", r.key, "err", err)
		return zero, false
	}
	if !ok {
		return zero, false
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		r.log.Warn("record corrupt, treating as absent", "key", r.key, "err", err)
		return zero, false
	}

	if r.maxAge > 0 && r.stamp != nil {
		writtenAt := time.UnixMilli(r.stamp(v))
		if r.now().Sub(writtenAt) >= r.maxAge {
			return zero, false
		}
	}
	if r.valid != nil && !r.valid(v) {
		return zero, false
	}
	return v, true
}

// Save encodes and writes the value. Failures are logged, never
// propagated.
func (r *Record[T]) Save(v T) {
	data, err := json.Marshal(v)
	if err != nil {
		r.log.Warn("record encode failed", "key", r.key, "err", err)
		return
	}
	if err := r.store.Set(r.key, data); err != nil {
		r.log.Warn("record save failed", "key", r.key, "err", err)
	}
}

// Clear deletes the record. A failure is treated as already cleared.
func (r *Record[T]) Clear() {
	if err := r.store.Delete(r.key); err != nil {
		r.log.Warn("record clear failed", "key", r.key, "err", err)
	}
}

// DebouncedRecord coalesces bursts of saves into one write: each save
// restarts the window and only the last value within it is persisted.
type DebouncedRecord[T any] struct {
	rec    *Record[T]
	window time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending *T
	closed  bool
}

func NewDebouncedRecord[T any](rec *Record[T], window time.Duration) *DebouncedRecord[T] {
	return &DebouncedRecord[T]{rec: rec, window: window}
}

// Save schedules v to be written once the window elapses without
// another save. Last write wins.
func (d *DebouncedRecord[T]) Save(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.pending = &v
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.flushPending)
}

func (d *DebouncedRecord[T]) flushPending() {
	d.mu.Lock()
	if d.closed || d.pending == nil {
		d.mu.Unlock()
		return
	}
	v := *d.pending
	d.pending = nil
	d.mu.Unlock()

	d.rec.Save(v)
}

// Flush persists any pending value immediately.
func (d *DebouncedRecord[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.flushPending()
}

// Load reads through to the underlying record.
func (d *DebouncedRecord[T]) Load() (T, bool) {
	return d.rec.Load()
}

// Clear drops any pending write and deletes the record.
func (d *DebouncedRecord[T]) Clear() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
	d.mu.Unlock()
	d.rec.Clear()
}

// Close cancels the window timer without writing. Teardown must not
// produce a write after the owning surface is gone.
func (d *DebouncedRecord[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
}
