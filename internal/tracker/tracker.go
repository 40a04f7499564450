// Package tracker emits one tick per elapsed second of playback, kept in
// sync with the player's own position rather than wall-clock time.
package tracker

import (
	"errors"
	"sync"
	"time"

	"github.com/compas-audio/compas/internal/clock"
	"github.com/compas-audio/compas/internal/logger"
)

const (
	// defaultLeadOffset is added to every wake-up interval so the tracker
	// wakes just after a full second of playback, never before it.
	defaultLeadOffset = 10 * time.Millisecond

	// defaultResyncThreshold is the largest gap between the interval a
	// wake-up was armed with and the freshly computed ideal interval that
	// is tolerated before re-arming with the corrected value.
	defaultResyncThreshold = 20 * time.Millisecond
)

var ErrAlreadyAttached = errors.New("tracker: already attached to a player")

// Player is the view of the playback engine the tracker needs: a readable
// position, the pause state at attach time, and the four lifecycle signals.
// Each OnX registration returns an unsubscribe func.
type Player interface {
	PositionMs() int64
	Paused() bool

	OnPaused(fn func()) (unsubscribe func())
	OnUnpaused(fn func()) (unsubscribe func())
	OnSeeked(fn func(positionMs int64)) (unsubscribe func())
	OnTrackStarted(fn func()) (unsubscribe func())
}

// Tracker schedules a single cancellable wake-up against the player
// position. Each firing decides between repeating the interval it was armed
// with and re-arming with a recomputed one, so the schedule continuously
// corrects drift between its own timer and the player's position advance.
//
// Signal handlers and wake-ups arrive from different goroutines; a single
// mutex serializes them. Tick callbacks run while that mutex is held and
// must not call back into the tracker.
type Tracker struct {
	mu sync.Mutex

	clk             clock.Clock
	leadOffset      time.Duration
	resyncThreshold time.Duration

	player Player
	paused bool

	// pending is the one outstanding wake-up; non-nil iff armed. armSeq
	// identifies the live arm so a wake-up that was already in flight when
	// it got cancelled or superseded is ignored when it runs.
	pending clock.Timer
	armSeq  uint64

	lastTickedSec int64

	onTick []func()
	unsubs []func()
}

type Option func(*Tracker)

// WithClock replaces the timer source, used by tests.
func WithClock(c clock.Clock) Option {
	return func(t *Tracker) { t.clk = c }
}

// WithTuning overrides the lead offset and resync threshold. Non-positive
// values keep the defaults.
func WithTuning(leadOffset, resyncThreshold time.Duration) Option {
	return func(t *Tracker) {
		if leadOffset > 0 {
			t.leadOffset = leadOffset
		}
		if resyncThreshold > 0 {
			t.resyncThreshold = resyncThreshold
		}
	}
}

func New(opts ...Option) *Tracker {
	t := &Tracker{
		clk:             clock.System,
		leadOffset:      defaultLeadOffset,
		resyncThreshold: defaultResyncThreshold,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnTick registers a tick consumer. There is no way to remove a single
// consumer; Detach silences all of them.
func (t *Tracker) OnTick(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onTick = append(t.onTick, fn)
}

// Attach subscribes to the player's lifecycle signals and, if the player is
// not paused, arms the first wake-up. One Tracker serves one tracking
// session: attaching twice returns ErrAlreadyAttached.
func (t *Tracker) Attach(p Player) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.player != nil {
		return ErrAlreadyAttached
	}
	t.player = p
	t.unsubs = []func(){
		p.OnPaused(t.handlePaused),
		p.OnUnpaused(t.handleUnpaused),
		p.OnSeeked(t.handleSeeked),
		p.OnTrackStarted(t.handleTrackStarted),
	}

	t.paused = p.Paused()
	if !t.paused {
		t.armFromPosition()
	}
	return nil
}

// Detach cancels the pending wake-up and unsubscribes from the player. No
// tick is emitted after Detach returns. Safe to call repeatedly and on a
// tracker that was never attached.
func (t *Tracker) Detach() {
	t.mu.Lock()
	t.disarm()
	unsubs := t.unsubs
	t.unsubs = nil
	t.player = nil
	t.mu.Unlock()

	for _, unsubscribe := range unsubs {
		unsubscribe()
	}
}

func (t *Tracker) handlePaused() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.player == nil {
		return
	}
	t.disarm()
	t.paused = true
}

func (t *Tracker) handleUnpaused() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.player == nil {
		return
	}
	t.paused = false
	if t.pending == nil {
		t.armFromPosition()
	}
}

// handleSeeked treats the seek target's second as already ticked so the
// next wake-up does not fire for the second the user landed on, and throws
// away the current schedule: whatever drift estimate it encoded is invalid.
func (t *Tracker) handleSeeked(positionMs int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.player == nil {
		return
	}
	t.lastTickedSec = positionMs / 1000
	if !t.paused {
		t.disarm()
		t.armFromPosition()
	}
}

// handleTrackStarted clears stale state from the previous track: if its
// final tick landed on second 1, a new track starting at zero would
// otherwise swallow the tick due at its own second 1.
func (t *Tracker) handleTrackStarted() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.player == nil {
		return
	}
	if t.lastTickedSec == 1 {
		t.lastTickedSec = 0
	}
}

// wake runs when an armed timer fires. seq pins the arm it belongs to: a
// cancelled or superseded wake-up that was already queued bails out here.
func (t *Tracker) wake(seq uint64, scheduled time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seq != t.armSeq || t.player == nil {
		return
	}

	positionMs := t.player.PositionMs()
	currentSec := positionMs / 1000

	// One tick per distinct second; second zero means no full second of
	// playback has elapsed yet.
	fire := currentSec != t.lastTickedSec && currentSec != 0
	if fire {
		t.lastTickedSec = currentSec
	}

	ideal := t.idealInterval(positionMs)
	if absDuration(scheduled-ideal) > t.resyncThreshold {
		t.arm(ideal)
	} else {
		// Within tolerance: keep repeating the interval this wake-up
		// was armed with instead of churning on tiny corrections.
		t.arm(scheduled)
	}

	if fire {
		for _, fn := range t.onTick {
			fn()
		}
	}
}

// idealInterval is the delay until leadOffset past the next second boundary
// of the given position. pos%1000 < 1000, so the result is always positive.
func (t *Tracker) idealInterval(positionMs int64) time.Duration {
	return time.Second + t.leadOffset - time.Duration(positionMs%1000)*time.Millisecond
}

// armFromPosition arms a wake-up for the next second boundary. Caller holds mu.
func (t *Tracker) armFromPosition() {
	t.arm(t.idealInterval(t.player.PositionMs()))
}

// arm schedules the single outstanding wake-up. Caller holds mu.
func (t *Tracker) arm(interval time.Duration) {
	t.armSeq++
	seq := t.armSeq
	t.pending = t.clk.AfterFunc(interval, func() { t.wake(seq, interval) })
	if t.pending == nil {
		// Host scheduler refused the timer; stay disarmed until the next
		// lifecycle signal tries again.
		logger.Log.Warn("tracker: could not arm wake-up, ticks suspended")
	}
}

// disarm cancels the pending wake-up, if any. Bumping armSeq invalidates a
// firing that already slipped past Stop. Caller holds mu.
func (t *Tracker) disarm() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.armSeq++
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
