// Package launch keeps the options a host supplied when it started (or
// re-activated) the process, so that any later component can look them up.
package launch

import (
	"sync"
	"time"
)

// Snapshot is a consistent view of the holder at one point in time.
type Snapshot struct {
	Options   Options
	Present   bool
	Revision  uint64    // number of writes so far
	UpdatedAt time.Time // zero until the first write
}

// Holder stores the most recent launch options. Writes replace the whole
// mapping; nothing is ever merged.
type Holder struct {
	// writeMu serialises writers through notification, so subscribers see
	// revisions in order.
	writeMu sync.Mutex

	mu        sync.RWMutex
	opts      Options
	present   bool
	revision  uint64
	updatedAt time.Time

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(Snapshot)
	order   []int
}

// sharedHolder lazily creates one Holder on the first get.
type sharedHolder struct {
	once sync.Once
	h    *Holder
}

func (s *sharedHolder) get() *Holder {
	s.once.Do(func() {
		s.h = New()
	})
	return s.h
}

var shared sharedHolder

// Shared returns the process-wide holder, creating it on first use.
func Shared() *Holder {
	return shared.get()
}

// New returns an empty holder. Composition roots and tests construct their
// own instead of reaching for Shared.
func New() *Holder {
	return &Holder{subs: make(map[int]func(Snapshot))}
}

// LaunchOptions returns a copy of the stored mapping. ok is false if nothing
// was recorded yet.
func (h *Holder) LaunchOptions() (opts Options, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.present {
		return nil, false
	}
	return h.opts.Clone(), true
}

// SetLaunchOptions replaces the stored mapping. A nil mapping is recorded as
// a present, empty one. It returns after every subscriber has run.
func (h *Holder) SetLaunchOptions(opts Options) {
	stored := opts.Clone()
	if stored == nil {
		stored = Options{}
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	h.mu.Lock()
	h.opts = stored
	h.present = true
	h.revision++
	h.updatedAt = now()
	snap := h.snapshotLocked()
	h.mu.Unlock()

	h.notify(snap)
}

// Snapshot returns options, presence, revision and update time together.
func (h *Holder) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshotLocked()
}

func (h *Holder) snapshotLocked() Snapshot {
	return Snapshot{
		Options:   h.opts.Clone(),
		Present:   h.present,
		Revision:  h.revision,
		UpdatedAt: h.updatedAt,
	}
}

// Subscribe registers fn to run after every write, in registration order.
// fn runs on the writer's goroutine without the read lock held, so it may call
// LaunchOptions or Snapshot. Writes are delivered one at a time in revision
// order; fn must not call SetLaunchOptions on the same holder.
func (h *Holder) Subscribe(fn func(Snapshot)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	h.subMu.Lock()
	id := h.nextSub
	h.nextSub++
	if h.subs == nil {
		h.subs = make(map[int]func(Snapshot))
	}
	h.subs[id] = fn
	h.order = append(h.order, id)
	h.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.subMu.Lock()
			delete(h.subs, id)
			for i, v := range h.order {
				if v == id {
					h.order = append(h.order[:i], h.order[i+1:]...)
					break
				}
			}
			h.subMu.Unlock()
		})
	}
}

func (h *Holder) notify(snap Snapshot) {
	h.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(h.order))
	for _, id := range h.order {
		fns = append(fns, h.subs[id])
	}
	h.subMu.Unlock()

	for i, fn := range fns {
		if i > 0 {
			snap.Options = snap.Options.Clone()
		}
		fn(snap)
	}
}

func now() time.Time {
	return time.Now().UTC()
}
