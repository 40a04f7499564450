package ports

// PlayerService controls the external playback engine and exposes its
// lifecycle signals. Every OnX registration returns an unsubscribe func;
// callbacks are invoked from the player's event goroutine.
type PlayerService interface {
	Play(path string) error
	TogglePause() error
	Stop() error
	SeekTo(positionMs int64) error

	// PositionMs and Paused answer from the last observed player state,
	// so they are cheap and never block on a dead engine.
	PositionMs() int64
	DurationMs() int64
	Paused() bool

	OnPaused(fn func()) (unsubscribe func())
	OnUnpaused(fn func()) (unsubscribe func())
	OnSeeked(fn func(positionMs int64)) (unsubscribe func())
	OnTrackStarted(fn func()) (unsubscribe func())

	Close() error
}
