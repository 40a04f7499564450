package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/compas-audio/compas/internal/logger"
	"github.com/compas-audio/compas/internal/ports"
	"github.com/compas-audio/compas/internal/services/config"
	"github.com/compas-audio/compas/internal/services/library"
	"github.com/compas-audio/compas/internal/services/player"
	"github.com/compas-audio/compas/internal/services/storage"
	"github.com/compas-audio/compas/internal/tracker"
	"github.com/compas-audio/compas/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "compas: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configService := config.NewViperConfigService()
	cfg, err := configService.Load()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("could not get the user's config directory: %w", err)
	}
	compasDir := filepath.Join(configDir, "compas")
	if err := os.MkdirAll(compasDir, 0755); err != nil {
		return fmt.Errorf("could not create the compas directory: %w", err)
	}

	storageService, err := storage.NewBboltStore(filepath.Join(compasDir, "compas.db"))
	if err != nil {
		return fmt.Errorf("could not initialize storage: %w", err)
	}
	defer storageService.Close()

	libraryService := library.NewScanner(cfg.MusicDir)
	playerService := player.NewMpvPlayer(cfg.MpvSocket)
	defer playerService.Close()

	initialModel := ui.InitialModel(libraryService, playerService, storageService, cfg.HistoryLimit)
	p := tea.NewProgram(initialModel, tea.WithAltScreen())

	timeTracker := tracker.New(tracker.WithTuning(
		time.Duration(cfg.Ticker.LeadOffsetMs)*time.Millisecond,
		time.Duration(cfg.Ticker.ResyncThresholdMs)*time.Millisecond,
	))
	timeTracker.OnTick(func() { p.Send(ports.TickMsg{}) })
	if err := timeTracker.Attach(playerService); err != nil {
		return fmt.Errorf("could not attach time tracker: %w", err)
	}
	defer timeTracker.Detach()

	// The seekbar also reacts to seeks, pause flips and track starts
	// directly, without waiting for the next tick.
	unsubscribes := []func(){
		playerService.OnSeeked(func(positionMs int64) { p.Send(ports.SeekedMsg{PositionMs: positionMs}) }),
		playerService.OnTrackStarted(func() { p.Send(ports.TrackStartedMsg{}) }),
		playerService.OnPaused(func() { p.Send(ports.PauseChangedMsg{Paused: true}) }),
		playerService.OnUnpaused(func() { p.Send(ports.PauseChangedMsg{Paused: false}) }),
	}
	defer func() {
		for _, unsubscribe := range unsubscribes {
			unsubscribe()
		}
	}()

	if _, err := p.Run(); err != nil {
		logger.Log.WithError(err).Error("UI terminated with error")
		return err
	}
	return nil
}
