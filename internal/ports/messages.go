package ports

import "github.com/compas-audio/compas/internal/domain"

type LibraryLoadedMsg struct{ Tracks []domain.Track }
type LibraryErrorMsg struct{ Err error }

type HistoryLoadedMsg struct{ Entries []domain.HistoryEntry }
type HistoryErrorMsg struct{ Err error }

// TickMsg is forwarded from the time tracker once per second of playback;
// consumers re-read the player position on receipt.
type TickMsg struct{}

type PlayTrackMsg struct{ Track domain.Track }
type TrackStartedMsg struct{}
type SeekedMsg struct{ PositionMs int64 }
type PauseChangedMsg struct{ Paused bool }
type PlayErrorMsg struct{ Err error }
