package player

import "sync"

// signalHub fans player lifecycle events out to subscribers. Subscriptions
// return an unsubscribe func, mirroring signal connect/disconnect pairs.
type signalHub struct {
	mu     sync.Mutex
	nextID int

	paused       map[int]func()
	unpaused     map[int]func()
	seeked       map[int]func(int64)
	trackStarted map[int]func()
}

func newSignalHub() *signalHub {
	return &signalHub{
		paused:       make(map[int]func()),
		unpaused:     make(map[int]func()),
		seeked:       make(map[int]func(int64)),
		trackStarted: make(map[int]func()),
	}
}

func (h *signalHub) onPaused(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.paused[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.paused, id)
	}
}

func (h *signalHub) onUnpaused(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.unpaused[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.unpaused, id)
	}
}

func (h *signalHub) onSeeked(fn func(int64)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.seeked[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.seeked, id)
	}
}

func (h *signalHub) onTrackStarted(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.trackStarted[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.trackStarted, id)
	}
}

func (h *signalHub) emitPaused() {
	for _, fn := range h.snapshotNoArg(h.paused) {
		fn()
	}
}

func (h *signalHub) emitUnpaused() {
	for _, fn := range h.snapshotNoArg(h.unpaused) {
		fn()
	}
}

func (h *signalHub) emitSeeked(positionMs int64) {
	h.mu.Lock()
	fns := make([]func(int64), 0, len(h.seeked))
	for _, fn := range h.seeked {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(positionMs)
	}
}

func (h *signalHub) emitTrackStarted() {
	for _, fn := range h.snapshotNoArg(h.trackStarted) {
		fn()
	}
}

// snapshotNoArg copies the subscriber set so callbacks run outside the lock
// and may unsubscribe themselves.
func (h *signalHub) snapshotNoArg(set map[int]func()) []func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	fns := make([]func(), 0, len(set))
	for _, fn := range set {
		fns = append(fns, fn)
	}
	return fns
}
