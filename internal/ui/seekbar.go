package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/compas-audio/compas/internal/domain"
	"github.com/compas-audio/compas/internal/logger"
	"github.com/compas-audio/compas/internal/ports"
)

const scrubStepMs = 5000

// SeekbarModel shows elapsed/remaining time and a position gauge, refreshed
// once per second by the tracker's tick. While the user is scrubbing, tick
// refreshes leave the display alone so the pending seek target stays put.
type SeekbarModel struct {
	styles  Styles
	player  ports.PlayerService
	storage ports.StorageService

	track      domain.Track
	hasTrack   bool
	positionMs int64
	durationMs int64
	paused     bool

	timerMode domain.TimerMode

	scrubbing     bool
	scrubTargetMs int64

	gauge progress.Model
	width int
}

func NewSeekbarModel(player ports.PlayerService, storage ports.StorageService, styles Styles) SeekbarModel {
	g := progress.New(progress.WithSolidFill("#7D56F4"), progress.WithoutPercentage())
	return SeekbarModel{
		styles:    styles,
		player:    player,
		storage:   storage,
		timerMode: domain.TimerModeBoth,
		paused:    true,
		gauge:     g,
	}
}

func (m *SeekbarModel) SetSize(w int) {
	m.width = w
	gw := w - 16
	if gw < 10 {
		gw = 10
	}
	m.gauge.Width = gw
}

// SetTrack is called when the app starts a new track.
func (m *SeekbarModel) SetTrack(track domain.Track) {
	m.track = track
	m.hasTrack = true
	m.positionMs = 0
	m.durationMs = track.DurationMs
	m.scrubbing = false
}

func (m *SeekbarModel) SetTimerMode(mode domain.TimerMode) {
	m.timerMode = mode
}

func (m *SeekbarModel) Scrubbing() bool { return m.scrubbing }

func (m SeekbarModel) Update(msg tea.Msg) (SeekbarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ports.TickMsg:
		// Consumer side of the tick contract: re-read the position, but
		// never move the display out from under an active scrub.
		if !m.scrubbing {
			m.positionMs = m.player.PositionMs()
			if m.durationMs == 0 {
				m.durationMs = m.player.DurationMs()
			}
		}
		return m, nil

	case ports.SeekedMsg:
		m.positionMs = msg.PositionMs
		return m, nil

	case ports.TrackStartedMsg:
		m.positionMs = 0
		if d := m.player.DurationMs(); d > 0 {
			m.durationMs = d
		}
		return m, nil

	case ports.PauseChangedMsg:
		m.paused = msg.Paused
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m SeekbarModel) handleKey(msg tea.KeyMsg) (SeekbarModel, tea.Cmd) {
	switch msg.String() {
	case "m":
		m.timerMode = domain.NextTimerMode(m.timerMode)
		mode := m.timerMode
		storage := m.storage
		return m, func() tea.Msg {
			if err := storage.SaveTimerMode(mode); err != nil {
				logger.Log.WithError(err).Warn("Could not persist timer mode")
			}
			return nil
		}

	case "h", "left":
		if !m.hasTrack {
			return m, nil
		}
		if !m.scrubbing {
			m.scrubbing = true
			m.scrubTargetMs = m.positionMs
		}
		m.scrubTargetMs -= scrubStepMs
		if m.scrubTargetMs < 0 {
			m.scrubTargetMs = 0
		}
		return m, nil

	case "l", "right":
		if !m.hasTrack {
			return m, nil
		}
		if !m.scrubbing {
			m.scrubbing = true
			m.scrubTargetMs = m.positionMs
		}
		m.scrubTargetMs += scrubStepMs
		if m.durationMs > 0 && m.scrubTargetMs > m.durationMs {
			m.scrubTargetMs = m.durationMs
		}
		return m, nil

	case "enter":
		if !m.scrubbing {
			return m, nil
		}
		m.scrubbing = false
		target := m.scrubTargetMs
		player := m.player
		return m, func() tea.Msg {
			if err := player.SeekTo(target); err != nil {
				return ports.PlayErrorMsg{Err: err}
			}
			return nil
		}

	case "esc":
		m.scrubbing = false
		return m, nil
	}

	return m, nil
}

func (m SeekbarModel) View() string {
	if !m.hasTrack {
		return m.styles.TimeDisabled.Render("nothing playing")
	}

	shownMs := m.positionMs
	if m.scrubbing {
		shownMs = m.scrubTargetMs
	}

	frac := 0.0
	if m.durationMs > 0 {
		frac = float64(shownMs) / float64(m.durationMs)
		if frac > 1 {
			frac = 1
		}
	}

	labelStyle := m.styles.TimeLabel
	if m.paused {
		labelStyle = m.styles.TimeDisabled
	}
	elapsed := labelStyle.Render(formatTime(shownMs / 1000))
	remaining := labelStyle.Render("-" + formatTime((m.durationMs-shownMs)/1000))

	var left, right string
	switch m.timerMode {
	case domain.TimerModeElapsed:
		left = elapsed
	case domain.TimerModeRemaining:
		left = remaining
	default:
		left = elapsed
		right = remaining
	}

	title := m.styles.TrackTitle.Render(truncate(m.track.Title, 40))
	artist := ""
	if m.track.Artist != "" {
		artist = m.styles.TrackArtist.Render(" " + truncate(m.track.Artist, 30))
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, left, " ", m.gauge.ViewAs(frac), " ", right)
	hint := ""
	if m.scrubbing {
		hint = m.styles.StatusHint.Render("  seek: enter to confirm, esc to cancel")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title+artist, bar+hint)
}
