package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/compas-audio/compas/internal/logger"
	"github.com/compas-audio/compas/internal/ports"
)

const (
	socketCheckRetries  = 20
	socketCheckInterval = 100 * time.Millisecond
	socketReadDeadline  = 500 * time.Millisecond

	mpvCommandReqIDPos = 1

	mpvObserveIDPause    = 1
	mpvObserveIDTimePos  = 2
	mpvObserveIDDuration = 3
)

type MpvCommand struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id,omitempty"`
}

type MpvResponse struct {
	Error     string `json:"error"`
	Data      any    `json:"data"`
	RequestID int    `json:"request_id"`
	Event     string `json:"event"`
	Name      string `json:"name"`
}

type MpvPlayer struct {
	socketPath string
	cmd        *exec.Cmd
	mu         sync.Mutex

	// Last observed engine state, fed by the event connection. Queries
	// answer from here when the engine cannot be reached.
	stateMu    sync.RWMutex
	positionMs int64
	durationMs int64
	paused     bool

	signals  *signalHub
	stopOnce sync.Once
	stopped  chan struct{}
}

func NewMpvPlayer(socketPath string) ports.PlayerService {
	os.Remove(socketPath)
	return &MpvPlayer{
		socketPath: socketPath,
		paused:     true,
		signals:    newSignalHub(),
		stopped:    make(chan struct{}),
	}
}

func (p *MpvPlayer) isProcessRunning() bool {
	return p.cmd != nil && p.cmd.Process != nil
}

func (p *MpvPlayer) startMpvProcess() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProcessRunning() {
		if p.cmd.ProcessState != nil && p.cmd.ProcessState.Exited() {
			p.cmd = nil
		} else {
			return nil
		}
	}

	logger.Log.Info("Starting new mpv process...")
	args := []string{
		"--idle",
		"--input-ipc-server=" + p.socketPath,
		"--no-video",
		"--no-config",
	}

	p.cmd = exec.Command("mpv", args...)

	if err := p.cmd.Start(); err != nil {
		p.cmd = nil
		return fmt.Errorf("could not start mpv process: %w", err)
	}

	for range socketCheckRetries {
		if _, err := os.Stat(p.socketPath); err == nil {
			logger.Log.Info("mpv socket detected. Process ready.")
			go p.listenEvents()
			return nil
		}
		time.Sleep(socketCheckInterval)
	}

	logger.Log.Errorf("Timed out waiting for mpv socket at %s", p.socketPath)
	p.cmd.Process.Kill()
	p.cmd = nil
	return fmt.Errorf("mpv process started but socket did not appear at %s", p.socketPath)
}

func (p *MpvPlayer) sendCommands(cmds ...MpvCommand) ([]MpvResponse, error) {
	conn, err := net.Dial("unix", p.socketPath)
	if err != nil {
		return nil, fmt.Errorf("could not connect to mpv socket: %w", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(socketReadDeadline))

	encoder := json.NewEncoder(conn)
	for _, cmd := range cmds {
		if err := encoder.Encode(cmd); err != nil {
			return nil, fmt.Errorf("error sending mpv command: %w", err)
		}
	}

	var responses []MpvResponse
	scanner := bufio.NewScanner(conn)
	for len(responses) < len(cmds) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				logger.Log.WithError(err).Error("Error reading from mpv socket")
			}
			break
		}

		line := scanner.Bytes()
		var resp MpvResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			logger.Log.WithError(err).Warnf("Could not parse line from mpv: %s", line)
			continue
		}

		// Event traffic is handled by the event connection, skip it here.
		if resp.Event == "" {
			responses = append(responses, resp)
		}
	}
	return responses, nil
}

// listenEvents holds a dedicated connection on which mpv pushes property
// changes and lifecycle events, and fans them out to subscribers.
func (p *MpvPlayer) listenEvents() {
	conn, err := net.Dial("unix", p.socketPath)
	if err != nil {
		logger.Log.WithError(err).Error("Could not open mpv event connection")
		return
	}
	defer conn.Close()

	go func() {
		<-p.stopped
		conn.Close()
	}()

	encoder := json.NewEncoder(conn)
	observed := []MpvCommand{
		{Command: []any{"observe_property", mpvObserveIDPause, "pause"}},
		{Command: []any{"observe_property", mpvObserveIDTimePos, "time-pos"}},
		{Command: []any{"observe_property", mpvObserveIDDuration, "duration"}},
	}
	for _, cmd := range observed {
		if err := encoder.Encode(cmd); err != nil {
			logger.Log.WithError(err).Error("Could not observe mpv properties")
			return
		}
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		p.handleEventLine(scanner.Bytes())
	}
	if err := scanner.Err(); err != nil {
		select {
		case <-p.stopped:
		default:
			logger.Log.WithError(err).Warn("mpv event connection closed")
		}
	}
}

// handleEventLine updates the cached state and raises the matching signal
// for one line of mpv's event stream.
func (p *MpvPlayer) handleEventLine(line []byte) {
	var ev MpvResponse
	if err := json.Unmarshal(line, &ev); err != nil {
		logger.Log.WithError(err).Warnf("Could not parse mpv event: %s", line)
		return
	}

	switch ev.Event {
	case "property-change":
		p.handlePropertyChange(ev)
	case "seek":
		p.signals.emitSeeked(p.PositionMs())
	case "start-file":
		p.signals.emitTrackStarted()
	}
}

func (p *MpvPlayer) handlePropertyChange(ev MpvResponse) {
	switch ev.Name {
	case "pause":
		paused, ok := ev.Data.(bool)
		if !ok {
			return
		}
		p.stateMu.Lock()
		changed := p.paused != paused
		p.paused = paused
		p.stateMu.Unlock()
		if !changed {
			return
		}
		if paused {
			p.signals.emitPaused()
		} else {
			p.signals.emitUnpaused()
		}
	case "time-pos":
		if pos, ok := ev.Data.(float64); ok {
			p.stateMu.Lock()
			p.positionMs = int64(pos * 1000)
			p.stateMu.Unlock()
		}
	case "duration":
		if dur, ok := ev.Data.(float64); ok {
			p.stateMu.Lock()
			p.durationMs = int64(dur * 1000)
			p.stateMu.Unlock()
		}
	}
}

func (p *MpvPlayer) Play(path string) error {
	if err := p.startMpvProcess(); err != nil {
		return err
	}
	loadFileCmd := MpvCommand{Command: []any{"loadfile", path, "replace"}}
	if _, err := p.sendCommands(loadFileCmd); err != nil {
		return err
	}
	// Playback starts unpaused.
	_, err := p.sendCommands(MpvCommand{Command: []any{"set_property", "pause", false}})
	return err
}

func (p *MpvPlayer) TogglePause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isProcessRunning() {
		return nil
	}
	cmd := MpvCommand{Command: []any{"cycle", "pause"}}
	_, err := p.sendCommands(cmd)
	return err
}

func (p *MpvPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isProcessRunning() {
		return nil
	}
	cmd := MpvCommand{Command: []any{"stop"}}
	_, err := p.sendCommands(cmd)
	return err
}

func (p *MpvPlayer) SeekTo(positionMs int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.isProcessRunning() {
		return nil
	}
	cmd := MpvCommand{Command: []any{"seek", float64(positionMs) / 1000, "absolute"}}
	_, err := p.sendCommands(cmd)
	return err
}

// PositionMs asks the engine for a fresh position; if the engine cannot be
// reached the last observed value is returned, the next read self-corrects.
func (p *MpvPlayer) PositionMs() int64 {
	posCmd := MpvCommand{Command: []any{"get_property", "time-pos"}, RequestID: mpvCommandReqIDPos}
	responses, err := p.sendCommands(posCmd)
	if err == nil {
		for _, resp := range responses {
			if resp.Error != "success" || resp.RequestID != mpvCommandReqIDPos {
				continue
			}
			if pos, ok := resp.Data.(float64); ok {
				ms := int64(pos * 1000)
				p.stateMu.Lock()
				p.positionMs = ms
				p.stateMu.Unlock()
				return ms
			}
		}
	}

	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.positionMs
}

func (p *MpvPlayer) DurationMs() int64 {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.durationMs
}

func (p *MpvPlayer) Paused() bool {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.paused
}

func (p *MpvPlayer) OnPaused(fn func()) func() {
	return p.signals.onPaused(fn)
}

func (p *MpvPlayer) OnUnpaused(fn func()) func() {
	return p.signals.onUnpaused(fn)
}

func (p *MpvPlayer) OnSeeked(fn func(positionMs int64)) func() {
	return p.signals.onSeeked(fn)
}

func (p *MpvPlayer) OnTrackStarted(fn func()) func() {
	return p.signals.onTrackStarted(fn)
}

func (p *MpvPlayer) Close() error {
	p.stopOnce.Do(func() { close(p.stopped) })

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.isProcessRunning() {
		if err := p.cmd.Process.Kill(); err != nil {
			logger.Log.WithError(err).Error("Error terminating mpv process")
		}
	}
	os.Remove(p.socketPath)
	return nil
}
