package domain

import "time"

type Track struct {
	Path       string
	Title      string
	Artist     string
	Album      string
	DurationMs int64
}

type HistoryEntry struct {
	Track    Track
	PlayedAt time.Time
}

// TimerMode selects which time labels the seekbar shows.
type TimerMode string

const (
	TimerModeBoth      TimerMode = "both"
	TimerModeElapsed   TimerMode = "elapsed"
	TimerModeRemaining TimerMode = "remaining"
)

// NextTimerMode cycles both -> elapsed -> remaining -> both.
func NextTimerMode(m TimerMode) TimerMode {
	switch m {
	case TimerModeBoth:
		return TimerModeElapsed
	case TimerModeElapsed:
		return TimerModeRemaining
	default:
		return TimerModeBoth
	}
}
