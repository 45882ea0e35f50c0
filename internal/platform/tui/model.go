package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// helpHeight is the number of rows reserved under the board for key help.
const helpHeight = 1

// resizer is implemented by games that can follow a terminal resize
// without restarting the run.
type resizer interface {
	Resize(width, height int)
}

// bestScorer is implemented by games that show the best score in their HUD.
type bestScorer interface {
	SetBestScore(best int)
	BestScore() int
}

// runStats is implemented by games that report details of a finished run.
type runStats interface {
	Won() bool
	Moves() int
	MaxTile() int
}

// configReporter is implemented by games that fall back to default rules
// when their config fails to load.
type configReporter interface {
	ConfigErr() error
}

// Model is the Bubble Tea model for playing one board.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *ScreenRenderer
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState

	chain    string // current tick loop
	best     int    // best score known to the store
	runSaved bool   // run recorded for the current game over
	quitting bool
	back     bool // user asked to return to the menu
	embedded bool // runs inside a parent model; never sends tea.Quit
}

// ModelOption customizes a Model.
type ModelOption func(*Model)

// WithLogger sets the logger used for storage failures.
func WithLogger(logger *log.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithRenderer sets the lipgloss renderer, e.g. one bound to an SSH session.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(m *Model) {
		m.renderer = NewScreenRenderer(r)
		if r == nil {
			return
		}
		m.help.Styles.ShortKey = r.NewStyle().Foreground(lipgloss.Color("245"))
		m.help.Styles.ShortDesc = r.NewStyle().Foreground(lipgloss.Color("240"))
		m.help.Styles.ShortSeparator = r.NewStyle().Foreground(lipgloss.Color("238"))
	}
}

// Embedded marks the model as hosted by another model. Quit and back
// requests are reported through Quitting and WantsBack instead of tea.Quit.
func Embedded() ModelOption {
	return func(m *Model) {
		m.embedded = true
	}
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 1)),
		renderer:   defaultScreenRenderer,
		store:      store,
		logger:     log.Default(),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		chain:      uuid.NewString(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.start()
	return m
}

// start resets the game for a new run and loads the stored best score.
func (m *Model) start() {
	m.game.Reset(m.gameConfig())
	m.gameState = m.game.State()
	m.runSaved = false

	if cr, ok := m.game.(configReporter); ok {
		if err := cr.ConfigErr(); err != nil {
			m.logger.Warn("rules config not loaded, using defaults", "game", m.game.ID(), "err", err)
		}
	}

	if m.store == nil {
		return
	}
	rows, cols := m.game.Size()
	best, err := m.store.BestScore(rows, cols)
	if err != nil {
		m.logger.Warn("cannot load best score", "game", m.game.ID(), "err", err)
		return
	}
	m.best = best
	if bs, ok := m.game.(bestScorer); ok {
		bs.SetBestScore(best)
	}
}

// gameConfig is the runtime config seen by the game: the screen minus the
// help bar.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-helpHeight, 1)
	return cfg
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.chain, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Chain != m.chain {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, m.quit()
	}

	switch action {
	case core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			// Leaving mid-run pauses first; a second press leaves.
			m.inputFrame.Set(core.ActionPause)
			return m, nil
		}
		m.back = true
		return m, m.quit()

	case core.ActionRestart:
		return m.restart()

	case core.ActionNone, core.ActionConfirm:
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

func (m Model) quit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// restart begins a new run with a fresh seed and a new tick loop.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.saveRun()
	m.config.Seed = time.Now().UnixNano()
	m.chain = uuid.NewString()
	m.inputFrame.Clear()
	m.start()
	return m, tickCmd(m.chain, m.config.TickRate)
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	cfg := m.gameConfig()
	m.screen.Resize(cfg.ScreenW, cfg.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(cfg.ScreenW, cfg.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(cfg)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Settled {
		m.recordBest()
	}
	if m.gameState.GameOver {
		m.saveRun()
	}

	return m, tickCmd(m.chain, m.config.TickRate)
}

// recordBest stores the current score as the grid's best when it is higher.
func (m *Model) recordBest() {
	if m.store == nil || m.gameState.Score <= m.best {
		return
	}
	rows, cols := m.game.Size()
	if _, err := m.store.RecordBest(rows, cols, m.gameState.Score); err != nil {
		m.logger.Warn("cannot record best score", "game", m.game.ID(), "err", err)
		return
	}
	m.best = m.gameState.Score
}

// saveRun records the finished run once. Runs with no score are skipped.
func (m *Model) saveRun() {
	if m.runSaved || m.store == nil || !m.gameState.GameOver || m.gameState.Score <= 0 {
		return
	}
	m.runSaved = true

	run := storage.RunResult{GameID: m.game.ID(), Score: m.gameState.Score}
	if rs, ok := m.game.(runStats); ok {
		run.Won = rs.Won()
		run.Moves = rs.Moves()
		run.MaxTile = rs.MaxTile()
	}

	entry, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Warn("cannot save run", "game", run.GameID, "err", err)
		return
	}
	m.logger.Debug("run saved", "game", entry.GameID, "run", entry.RunID, "score", entry.Score, "won", entry.Won)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, config.AppDir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
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

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return m.renderer.Render(m.screen) + "\n" + m.help.View(m.keyMapper.Keys())
}

// Game returns the game being played.
func (m Model) Game() registry.Game {
	return m.game
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// WantsBack reports whether the user asked to return to the menu.
func (m Model) WantsBack() bool {
	return m.back
}

// Config returns the current runtime config (may have been updated by resize).
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// Run starts the Bubble Tea program with the given model. It reports
// whether the user asked to go back to the menu rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) (back bool, err error) {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	// A quit mid-run still records the run if it had ended.
	m.saveRun()
	return m.WantsBack(), nil
}
