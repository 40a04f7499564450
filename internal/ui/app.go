package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/compas-audio/compas/internal/domain"
	"github.com/compas-audio/compas/internal/logger"
	"github.com/compas-audio/compas/internal/ports"
)

const (
	tabLibrary = 0
	tabHistory = 1
)

type AppModel struct {
	width, height int

	library ports.LibraryService
	player  ports.PlayerService
	storage ports.StorageService

	historyLimit int

	tabs        TabModel
	libraryView BrowserModel
	historyView BrowserModel
	seekbar     SeekbarModel
	styles      Styles
}

func InitialModel(library ports.LibraryService, player ports.PlayerService, storage ports.StorageService, historyLimit int) AppModel {
	styles := DefaultStyles()
	return AppModel{
		library:      library,
		player:       player,
		storage:      storage,
		historyLimit: historyLimit,
		tabs:         NewTabModel(),
		libraryView:  NewBrowserModel("library", "filter library...", styles),
		historyView:  NewBrowserModel("history", "filter history...", styles),
		seekbar:      NewSeekbarModel(player, storage, styles),
		styles:       styles,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		scanLibraryCmd(m.library),
		loadHistoryCmd(m.storage, m.historyLimit),
		loadTimerModeCmd(m.storage),
	)
}

func scanLibraryCmd(library ports.LibraryService) tea.Cmd {
	return func() tea.Msg {
		tracks, err := library.Scan()
		if err != nil {
			return ports.LibraryErrorMsg{Err: err}
		}
		return ports.LibraryLoadedMsg{Tracks: tracks}
	}
}

func loadHistoryCmd(storage ports.StorageService, limit int) tea.Cmd {
	return func() tea.Msg {
		entries, err := storage.GetHistory(limit)
		if err != nil {
			return ports.HistoryErrorMsg{Err: err}
		}
		return ports.HistoryLoadedMsg{Entries: entries}
	}
}

type timerModeLoadedMsg struct{ mode domain.TimerMode }

func loadTimerModeCmd(storage ports.StorageService) tea.Cmd {
	return func() tea.Msg {
		mode, err := storage.LoadTimerMode()
		if err != nil {
			logger.Log.WithError(err).Warn("Could not load timer mode preference")
			mode = domain.TimerModeBoth
		}
		return timerModeLoadedMsg{mode: mode}
	}
}

func playTrackCmd(player ports.PlayerService, storage ports.StorageService, track domain.Track) tea.Cmd {
	return func() tea.Msg {
		if err := player.Play(track.Path); err != nil {
			return ports.PlayErrorMsg{Err: err}
		}
		if err := storage.AddToHistory(domain.HistoryEntry{Track: track, PlayedAt: time.Now()}); err != nil {
			logger.Log.WithError(err).Warn("Could not record history entry")
		}
		return nil
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := m.height - 10
		if contentHeight < 3 {
			contentHeight = 3
		}
		m.libraryView.SetSize(m.width-6, contentHeight)
		m.historyView.SetSize(m.width-6, contentHeight)
		m.seekbar.SetSize(m.width - 6)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// While the filter input is typing, every printable key belongs
		// to it.
		if !m.activeBrowser().Filtering() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "tab":
				m.tabs.Next()
				if m.tabs.ActiveTab == tabHistory {
					return m, loadHistoryCmd(m.storage, m.historyLimit)
				}
				return m, nil
			case " ":
				player := m.player
				return m, func() tea.Msg {
					if err := player.TogglePause(); err != nil {
						return ports.PlayErrorMsg{Err: err}
					}
					return nil
				}
			case "m", "h", "l", "left", "right":
				m.seekbar, cmd = m.seekbar.Update(msg)
				return m, cmd
			case "enter", "esc":
				// A pending scrub owns enter/esc; otherwise the
				// active list does.
				if m.seekbar.Scrubbing() {
					m.seekbar, cmd = m.seekbar.Update(msg)
					return m, cmd
				}
			}
		}

	case ports.LibraryLoadedMsg:
		m.libraryView.SetTracks(msg.Tracks, nil)
		return m, nil

	case ports.LibraryErrorMsg:
		m.libraryView.SetError(msg.Err)
		return m, nil

	case ports.HistoryLoadedMsg:
		tracks := lo.Map(msg.Entries, func(e domain.HistoryEntry, _ int) domain.Track { return e.Track })
		notes := lo.Map(msg.Entries, func(e domain.HistoryEntry, _ int) string {
			return e.PlayedAt.Format("2006-01-02 15:04")
		})
		m.historyView.SetTracks(tracks, notes)
		return m, nil

	case ports.HistoryErrorMsg:
		m.historyView.SetError(msg.Err)
		return m, nil

	case timerModeLoadedMsg:
		m.seekbar.SetTimerMode(msg.mode)
		return m, nil

	case ports.PlayTrackMsg:
		m.seekbar.SetTrack(msg.Track)
		return m, playTrackCmd(m.player, m.storage, msg.Track)

	case ports.PlayErrorMsg:
		logger.Log.WithError(msg.Err).Error("Playback error")
		return m, nil

	case ports.TickMsg, ports.SeekedMsg, ports.TrackStartedMsg, ports.PauseChangedMsg:
		m.seekbar, cmd = m.seekbar.Update(msg)
		return m, cmd
	}

	switch m.tabs.ActiveTab {
	case tabLibrary:
		m.libraryView, cmd = m.libraryView.Update(msg)
	case tabHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *AppModel) activeBrowser() *BrowserModel {
	if m.tabs.ActiveTab == tabHistory {
		return &m.historyView
	}
	return &m.libraryView
}

func (m AppModel) View() string {
	var content string
	switch m.tabs.ActiveTab {
	case tabLibrary:
		content = m.libraryView.View()
	case tabHistory:
		content = m.historyView.View()
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.tabs.View(),
		content,
		"",
		m.seekbar.View(),
		m.styles.StatusHint.Render("space pause · h/l seek · m timer mode · tab switch · q quit"),
	)

	return m.styles.App.Render(body)
}
