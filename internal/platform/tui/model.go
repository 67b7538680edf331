package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/jaimp/internal/config"
	"github.com/vovakirdan/jaimp/internal/core"
	"github.com/vovakirdan/jaimp/internal/registry"
	"github.com/vovakirdan/jaimp/internal/storage"
)

// runReporter is implemented by modes that can describe their current run
// for the history table.
type runReporter interface {
	RunSeed() int64
	Cause() string
	RunDuration() time.Duration
}

// bestKeeper is implemented by modes that show the stored best run.
type bestKeeper interface {
	SetBest(n int)
}

// Options configures a game model.
type Options struct {
	Store    *storage.Store        // nil disables run history
	Logger   *log.Logger           // nil discards
	Viewport config.ViewportConfig // logical world size drawn onto the terminal
	Input    config.InputConfig    // hold windows for keys the terminal only reports as presses
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a JAIMP mode.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keys      *KeyMapper
	holds     *HoldTracker
	help      help.Model
	gameState core.GameState
	quitting  bool
	runSaved  bool // Whether the current game over has been recorded
}

// NewModel creates a new Bubble Tea model for the given game and resets it.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	screen := core.NewScreen(cfg.ScreenW, screenRows(cfg.ScreenH))
	if opts.Viewport.Width > 0 && opts.Viewport.Height > 0 {
		screen.SetViewport(opts.Viewport.Width, opts.Viewport.Height)
	}

	m := Model{
		game:   game,
		screen: screen,
		store:  opts.Store,
		logger: opts.Logger,
		config: cfg,
		keys:   NewKeyMapper(),
		holds:  NewHoldTracker(opts.Input),
		help:   help.New(),
	}
	m.help.Width = cfg.ScreenW

	game.Reset(cfg)
	m.gameState = game.State()
	m.loadBest()
	return m
}

// screenRows leaves the bottom line for the help bar.
func screenRows(h int) int {
	return max(h-1, 1)
}

func (m Model) loadBest() {
	bk, ok := m.game.(bestKeeper)
	if !ok || m.store == nil {
		return
	}
	best, err := m.store.BestChunks(m.game.ID())
	if err != nil {
		m.logger.Warn("cannot load best run", "mode", m.game.ID(), "err", err)
		return
	}
	bk.SetBest(best)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		if m.gameState.Playing && !m.gameState.GameOver {
			m.saveRun("quit")
		}
		m.quitting = true
		return m, tea.Quit
	}

	m.holds.Press(action, time.Now())
	return m, nil
}

// handleResize processes window resize events. The session keeps running;
// only the raster changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, screenRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	frame := m.holds.Frame(now)
	result := m.game.Update(frame, m.config.TickSeconds())
	m.gameState = result.State

	// Record the run once per game over
	switch {
	case m.gameState.GameOver && !m.runSaved:
		cause := ""
		if r, ok := m.game.(runReporter); ok {
			cause = r.Cause()
		}
		m.saveRun(cause)
		m.runSaved = true
	case !m.gameState.GameOver:
		m.runSaved = false
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the current run. Failures are logged; the game continues.
func (m Model) saveRun(cause string) {
	if m.store == nil {
		return
	}
	run := storage.Run{
		Mode:   m.game.ID(),
		Chunks: m.gameState.Score,
		Cause:  cause,
	}
	if r, ok := m.game.(runReporter); ok {
		run.Seed = r.RunSeed()
		run.Duration = r.RunDuration()
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Error("cannot save run", "mode", run.Mode, "err", err)
	}
}

// saveScreenshot saves the text layer of the current frame to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := config.HomeDir()
	if dir == "" {
		return
	}
	dir = filepath.Join(dir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Run starts the Bubble Tea program for the given game and blocks until
// the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
