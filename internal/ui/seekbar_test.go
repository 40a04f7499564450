package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compas-audio/compas/internal/domain"
	"github.com/compas-audio/compas/internal/ports"
)

type stubPlayer struct {
	positionMs int64
	durationMs int64
	paused     bool
	seeks      []int64
}

func (p *stubPlayer) Play(string) error  { return nil }
func (p *stubPlayer) TogglePause() error { return nil }
func (p *stubPlayer) Stop() error        { return nil }
func (p *stubPlayer) SeekTo(ms int64) error {
	p.seeks = append(p.seeks, ms)
	return nil
}
func (p *stubPlayer) PositionMs() int64 { return p.positionMs }
func (p *stubPlayer) DurationMs() int64 { return p.durationMs }
func (p *stubPlayer) Paused() bool      { return p.paused }

func (p *stubPlayer) OnPaused(func()) func()       { return func() {} }
func (p *stubPlayer) OnUnpaused(func()) func()     { return func() {} }
func (p *stubPlayer) OnSeeked(func(int64)) func()  { return func() {} }
func (p *stubPlayer) OnTrackStarted(func()) func() { return func() {} }
func (p *stubPlayer) Close() error                 { return nil }

type stubStorage struct {
	savedModes []domain.TimerMode
}

func (s *stubStorage) AddToHistory(domain.HistoryEntry) error { return nil }
func (s *stubStorage) GetHistory(int) ([]domain.HistoryEntry, error) {
	return nil, nil
}
func (s *stubStorage) SaveTimerMode(mode domain.TimerMode) error {
	s.savedModes = append(s.savedModes, mode)
	return nil
}
func (s *stubStorage) LoadTimerMode() (domain.TimerMode, error) {
	return domain.TimerModeBoth, nil
}
func (s *stubStorage) Close() error { return nil }

func newTestSeekbar(player *stubPlayer, storage *stubStorage) SeekbarModel {
	m := NewSeekbarModel(player, storage, DefaultStyles())
	m.SetSize(80)
	m.SetTrack(domain.Track{Path: "/music/a.mp3", Title: "A", DurationMs: 60000})
	return m
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSeekbarTickRefreshesPosition(t *testing.T) {
	player := &stubPlayer{positionMs: 15000, durationMs: 60000}
	m := newTestSeekbar(player, &stubStorage{})

	m, _ = m.Update(ports.TickMsg{})

	assert.Equal(t, int64(15000), m.positionMs)
}

func TestSeekbarTickIgnoredWhileScrubbing(t *testing.T) {
	player := &stubPlayer{positionMs: 15000, durationMs: 60000}
	m := newTestSeekbar(player, &stubStorage{})
	m, _ = m.Update(ports.TickMsg{})

	// Start scrubbing, then let ticks arrive.
	m, _ = m.Update(keyMsg("l"))
	require.True(t, m.Scrubbing())
	player.positionMs = 25000
	m, _ = m.Update(ports.TickMsg{})

	assert.Equal(t, int64(15000), m.positionMs, "ticks must not move the display during a scrub")
	assert.Equal(t, int64(20000), m.scrubTargetMs)
}

func TestSeekbarScrubCommitSeeksPlayer(t *testing.T) {
	player := &stubPlayer{positionMs: 15000, durationMs: 60000}
	m := newTestSeekbar(player, &stubStorage{})
	m, _ = m.Update(ports.TickMsg{})

	m, _ = m.Update(keyMsg("l"))
	m, _ = m.Update(keyMsg("l"))
	m, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	cmd()

	assert.False(t, m.Scrubbing())
	require.Len(t, player.seeks, 1)
	assert.Equal(t, int64(25000), player.seeks[0])
}

func TestSeekbarScrubCancel(t *testing.T) {
	player := &stubPlayer{positionMs: 15000, durationMs: 60000}
	m := newTestSeekbar(player, &stubStorage{})
	m, _ = m.Update(ports.TickMsg{})

	m, _ = m.Update(keyMsg("h"))
	m, _ = m.Update(keyMsg("esc"))

	assert.False(t, m.Scrubbing())
	assert.Empty(t, player.seeks)
}

func TestSeekbarScrubClampsToTrackBounds(t *testing.T) {
	player := &stubPlayer{positionMs: 2000, durationMs: 10000}
	m := newTestSeekbar(player, &stubStorage{})
	m, _ = m.Update(ports.TickMsg{})

	m, _ = m.Update(keyMsg("h"))
	m, _ = m.Update(keyMsg("h"))
	assert.Equal(t, int64(0), m.scrubTargetMs)

	m, _ = m.Update(keyMsg("esc"))
	m, _ = m.Update(keyMsg("l"))
	m, _ = m.Update(keyMsg("l"))
	m, _ = m.Update(keyMsg("l"))
	assert.Equal(t, int64(10000), m.scrubTargetMs)
}

func TestSeekbarTimerModeCyclesAndPersists(t *testing.T) {
	storage := &stubStorage{}
	m := newTestSeekbar(&stubPlayer{durationMs: 60000}, storage)

	m, cmd := m.Update(keyMsg("m"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, domain.TimerModeElapsed, m.timerMode)

	m, cmd = m.Update(keyMsg("m"))
	cmd()
	assert.Equal(t, domain.TimerModeRemaining, m.timerMode)

	m, cmd = m.Update(keyMsg("m"))
	cmd()
	assert.Equal(t, domain.TimerModeBoth, m.timerMode)

	assert.Equal(t, []domain.TimerMode{
		domain.TimerModeElapsed,
		domain.TimerModeRemaining,
		domain.TimerModeBoth,
	}, storage.savedModes)
}

func TestSeekbarSeekMessageUpdatesImmediately(t *testing.T) {
	m := newTestSeekbar(&stubPlayer{durationMs: 60000}, &stubStorage{})

	m, _ = m.Update(ports.SeekedMsg{PositionMs: 30000})
	assert.Equal(t, int64(30000), m.positionMs)

	m, _ = m.Update(ports.TrackStartedMsg{})
	assert.Equal(t, int64(0), m.positionMs)
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0:00", formatTime(0))
	assert.Equal(t, "0:59", formatTime(59))
	assert.Equal(t, "3:05", formatTime(185))
	assert.Equal(t, "1:00:01", formatTime(3601))
	assert.Equal(t, "0:00", formatTime(-5))
}

func TestNextTimerMode(t *testing.T) {
	assert.Equal(t, domain.TimerModeElapsed, domain.NextTimerMode(domain.TimerModeBoth))
	assert.Equal(t, domain.TimerModeRemaining, domain.NextTimerMode(domain.TimerModeElapsed))
	assert.Equal(t, domain.TimerModeBoth, domain.NextTimerMode(domain.TimerModeRemaining))
	assert.Equal(t, domain.TimerModeBoth, domain.NextTimerMode(domain.TimerMode("junk")))
}
