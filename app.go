// Package main contains the application wiring and the AppManager which
// coordinates the counter value, audio and the UI. This file centralizes the
// shared application state and the command loop used to serialize value
// mutations.
//
// Maintenance notes / tips:
//   - Concurrency model: the application uses a single command-loop goroutine
//     (see `commandLoop`) to serialize Add/Set/Reset operations on the value
//     cell. The cell's change listener forwards new values to the display
//     widget, which hops onto the Fyne UI thread itself, so the engine only
//     ever runs there.
//   - `cmdCh` is a buffered channel used to enqueue commands from the UI. The
//     current implementation drops commands when the channel stays full to
//     avoid blocking the UI. If you need stronger guarantees, increase the
//     buffer size or add backpressure to the controls.
package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"RollCounter/control"
	"RollCounter/counter"
	"RollCounter/i18n"
	"RollCounter/ui"
)

// AppContentReader defines the interface for reading content from the
// embedded file system.
type AppContentReader interface {
	ReadFile(name string) ([]byte, error)
}

// AppConfig holds the startup configuration loaded from
// assets/app_config.json.
type AppConfig struct {
	InitialValue int  `json:"initial_value"`
	DurationMs   int  `json:"duration_ms"`
	SmallStep    int  `json:"small_step"`
	LargeStep    int  `json:"large_step"`
	TickSound    bool `json:"tick_sound"`
	MaxMagnitude int  `json:"max_magnitude"`
}

// LoadAppConfig loads the application configuration from the embedded JSON
// file.
func LoadAppConfig(reader AppContentReader) AppConfig {
	data, err := reader.ReadFile("assets/app_config.json")
	if err != nil {
		log.Fatalf("Failed to read app config: %v", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Failed to unmarshal app config: %v", err)
	}
	if cfg.SmallStep <= 0 {
		cfg.SmallStep = 1
	}
	if cfg.LargeStep <= 0 {
		cfg.LargeStep = 10
	}
	if cfg.MaxMagnitude <= 0 {
		cfg.MaxMagnitude = 999999
	}
	return cfg
}

// AppManager is the main application struct, holding all state.
type AppManager struct {
	mainWindow fyne.Window
	cfg        AppConfig
	cell       *counter.Cell
	display    *ui.Counter
	cmdCh      chan control.Command
	cmdCtx     context.Context
	cmdCancel  context.CancelFunc

	animCheck *widget.Check

	tickBuffer  *beep.Buffer
	audioReady  bool
	speakerLock sync.Mutex

	content embed.FS // Embedded file system for assets
}

// NewAppManager creates a new application manager.
func NewAppManager(content embed.FS) *AppManager {
	a := &AppManager{content: content}
	a.cfg = LoadAppConfig(content)
	log.Printf("Loaded app config: initial=%d duration=%dms", a.cfg.InitialValue, a.cfg.DurationMs)
	a.initAudio()

	a.cell = counter.NewCell(a.cfg.InitialValue)
	a.display = ui.NewCounter(counter.Options{
		Value:               a.cfg.InitialValue,
		Duration:            time.Duration(a.cfg.DurationMs) * time.Millisecond,
		OnAnimationComplete: a.playTick,
	})
	a.cell.OnChange(a.display.SetValue)

	// Use a larger buffer for the command channel to reduce drops under brief bursts.
	a.cmdCh = make(chan control.Command, 256)
	a.cmdCtx, a.cmdCancel = context.WithCancel(context.Background())
	go a.commandLoop()

	return a
}

// EnqueueCommand posts a command to the internal command loop.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	// Try to enqueue the command but avoid blocking UI indefinitely. If the
	// channel stays full for the configured short timeout, drop and log.
	select {
	case a.cmdCh <- cmd:
	case <-time.After(150 * time.Millisecond):
		log.Printf("EnqueueCommand timeout: dropping command")
	}
}

func (a *AppManager) commandLoop() {
	for {
		select {
		case <-a.cmdCtx.Done():
			return
		case cmd := <-a.cmdCh:
			switch cmd.Type {
			case control.CmdAdd:
				a.cell.Set(a.clamp(a.cell.Get() + cmd.Delta))
			case control.CmdSet:
				a.cell.Set(a.clamp(cmd.Value))
			case control.CmdReset:
				a.cell.Set(a.cfg.InitialValue)
			}
			// send reply if requested
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- nil:
				default:
				}
			}
		}
	}
}

func (a *AppManager) clamp(v int) int {
	if v > a.cfg.MaxMagnitude {
		return a.cfg.MaxMagnitude
	}
	if v < -a.cfg.MaxMagnitude {
		return -a.cfg.MaxMagnitude
	}
	return v
}

// Display returns the counter widget.
func (a *AppManager) Display() *ui.Counter {
	return a.display
}

// SmallStep returns the small increment step.
func (a *AppManager) SmallStep() int {
	return a.cfg.SmallStep
}

// LargeStep returns the large increment step.
func (a *AppManager) LargeStep() int {
	return a.cfg.LargeStep
}

// ParseValue validates a direct-set request from the entry box.
func (a *AppManager) ParseValue(input string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("invalid value")
	}
	if v > a.cfg.MaxMagnitude || v < -a.cfg.MaxMagnitude {
		return 0, fmt.Errorf("value out of range")
	}
	return v, nil
}

// SetAnimationsEnabled routes the animations checkbox to the widget's
// reduced-motion path.
func (a *AppManager) SetAnimationsEnabled(enabled bool) {
	a.display.SetDisableAnimation(!enabled)
}

// SetAnimCheck sets the animations checkbox widget.
func (a *AppManager) SetAnimCheck(c *widget.Check) {
	a.animCheck = c
}

func (a *AppManager) initAudio() {
	if err := speaker.Init(44100, 44100/10); err != nil {
		log.Printf("Audio disabled: Failed to initialize speaker: %v\n", err)
		return
	}

	tone, err := generators.SineTone(44100, 880)
	if err != nil {
		log.Printf("Audio disabled: Failed to build tick tone: %v\n", err)
		return
	}

	var sr beep.SampleRate = 44100
	buffer := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buffer.Append(beep.Take(sr.N(40*time.Millisecond), tone))
	a.tickBuffer = buffer
	a.audioReady = true
}

// playTick plays a short blip once a transition completes.
func (a *AppManager) playTick() {
	if !a.audioReady || !a.cfg.TickSound {
		return
	}

	a.speakerLock.Lock()
	defer a.speakerLock.Unlock()

	speaker.Play(a.tickBuffer.Streamer(0, a.tickBuffer.Len()))
}

// HandleKeyRune handles key presses for the application.
func (a *AppManager) HandleKeyRune(r rune) {
	switch r {
	case '+', '=':
		a.EnqueueCommand(control.Command{Type: control.CmdAdd, Delta: a.cfg.SmallStep})
	case '-', '_':
		a.EnqueueCommand(control.Command{Type: control.CmdAdd, Delta: -a.cfg.SmallStep})
	case 'r', 'R', '0':
		a.EnqueueCommand(control.Command{Type: control.CmdReset})
	case 'a', 'A':
		// Key handlers run on the UI thread, so the checkbox can be
		// toggled directly. Its OnChanged callback applies the change.
		if a.animCheck != nil {
			a.animCheck.SetChecked(!a.animCheck.Checked)
		}
	}
}

// ShowHelpDialog shows the help dialog fed from the embedded help asset.
func (a *AppManager) ShowHelpDialog() {
	bytes, err := a.content.ReadFile("assets/counter_help.txt")
	if err != nil {
		dialog.ShowError(err, a.mainWindow)
		return
	}

	text := widget.NewLabel(string(bytes))
	text.Wrapping = fyne.TextWrapWord

	dialog.ShowCustom(i18n.T("Help"), i18n.T("Close"), text, a.mainWindow)
}

// Shutdown attempts to gracefully stop the AppManager command loop. It
// cancels the internal context and allows background goroutines to exit.
func (a *AppManager) Shutdown() {
	if a.cmdCancel != nil {
		a.cmdCancel()
	}
}
