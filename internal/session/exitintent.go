package session

import (
	"sync"
	"time"
)

// Trigger is the environment-independent recovery trigger: something
// that can predict the customer is about to leave and will invoke the
// registered callback at most once.
type Trigger interface {
	OnLikelyExit(fn func())
}

// Flag is a boolean scoped to one browsing session (one program run).
// It outlives individual screen mounts, so a detector rebuilt for a new
// screen stays suppressed once any detector has fired.
type Flag struct {
	mu  sync.Mutex
	set bool
}

func (f *Flag) Get() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set
}

func (f *Flag) Set() {
	f.mu.Lock()
	f.set = true
	f.mu.Unlock()
}

// Detector turns pointer and visibility signals into a single likely-
// exit callback. The primary desktop signal is the pointer crossing the
// top edge; visibility-hidden is the fallback for everything else.
// It fires at most once per detector, and the shared Flag suppresses
// any further fire within the same browsing session.
type Detector struct {
	flag     *Flag
	armDelay time.Duration

	mu        sync.Mutex
	fn        func()
	armTimer  *time.Timer
	armed     bool
	triggered bool
	done      bool
}

// NewDetector creates a detector. armDelay > 0 keeps the detector
// disarmed for that long after Arm, so an accidental pointer flick
// right after mount does not fire.
func NewDetector(flag *Flag, armDelay time.Duration) *Detector {
	if flag == nil {
		flag = &Flag{}
	}
	return &Detector{flag: flag, armDelay: armDelay}
}

// OnLikelyExit registers the one-shot callback.
func (d *Detector) OnLikelyExit(fn func()) {
	d.mu.Lock()
	d.fn = fn
	d.mu.Unlock()
}

// Arm makes the detector eligible to fire, after the configured delay.
func (d *Detector) Arm() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.done || d.armed || d.armTimer != nil {
		return
	}
	if d.armDelay <= 0 {
		d.armed = true
		return
	}
	d.armTimer = time.AfterFunc(d.armDelay, func() {
		d.mu.Lock()
		if !d.done {
			d.armed = true
		}
		d.armTimer = nil
		d.mu.Unlock()
	})
}

// PointerReenter cancels a pending arming timer: the customer
// re-engaged, so a stale fire must not happen.
func (d *Detector) PointerReenter() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.armTimer != nil {
		d.armTimer.Stop()
		d.armTimer = nil
	}
}

// PointerTop reports the pointer crossing the top edge of the surface.
func (d *Detector) PointerTop() {
	d.signal()
}

// Hidden reports the surface losing visibility (tab switch, terminal
// blur).
func (d *Detector) Hidden() {
	d.signal()
}

func (d *Detector) signal() {
	d.mu.Lock()
	if d.done || !d.armed || d.triggered || d.flag.Get() {
		d.mu.Unlock()
		return
	}
	d.triggered = true
	fn := d.fn
	d.mu.Unlock()

	d.flag.Set()
	if fn != nil {
		fn()
	}
}

// Teardown cancels timers and disables the detector. Callbacks must not
// fire after the owning surface is gone.
func (d *Detector) Teardown() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.done = true
	if d.armTimer != nil {
		d.armTimer.Stop()
		d.armTimer = nil
	}
}
