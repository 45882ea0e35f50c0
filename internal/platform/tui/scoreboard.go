package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	scoreboardRuns   = 100 // runs loaded per grid
	scoreboardChrome = 9   // rows used by title, stats, grid picker, borders and help
)

// ScoreboardKeyMap holds the high-score screen bindings.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGrid key.Binding
	PrevGrid key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevGrid, k.NextGrid, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.PrevGrid, k.NextGrid}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns the scoreboard bindings. Left and right
// switch grids; up and down scroll runs.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		NextGrid: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "bigger grid")),
		PrevGrid: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "smaller grid")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	gridActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("130"))
	gridIdleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	runsBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardModel lists finished runs of one grid size at a time.
type ScoreboardModel struct {
	grids     []registry.GameInfo
	current   int
	store     *storage.Store
	runs      []storage.ScoreEntry
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the smallest grid.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		grids:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

// SelectGame moves the scoreboard to the given grid, if registered.
func (m *ScoreboardModel) SelectGame(gameID string) {
	for i, g := range m.grids {
		if g.ID == gameID {
			m.current = i
			m.load()
			return
		}
	}
}

// newTable sizes the run table to the window. The date column takes
// whatever width is left.
func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Tile", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Result", Width: 6},
		{Title: "Played", Width: 12},
	}
	fixed := 0
	for _, c := range columns[:len(columns)-1] {
		fixed += c.Width + 2
	}
	columns[len(columns)-1].Width = clampInt(m.width-fixed-8, 12, 16)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-scoreboardChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("130")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// load reads the runs and stats of the current grid.
func (m *ScoreboardModel) load() {
	m.runs = nil
	m.stats = nil
	if m.store != nil && len(m.grids) > 0 {
		id := m.grids[m.current].ID
		if runs, err := m.store.TopScores(id, scoreboardRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.MaxTile),
			strconv.Itoa(r.Moves),
			result,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// step moves to the next (+1) or previous (-1) grid, wrapping around.
func (m *ScoreboardModel) step(delta int) {
	if len(m.grids) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.grids)) % len(m.grids)
	m.load()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update switches grids and scrolls the run table.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGrid):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGrid):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View draws the grid picker above the runs of the selected grid.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.gridPicker(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n")

	body := dimStyle.Italic(true).Padding(1, 2).Render("No finished runs on this grid yet.")
	if len(m.runs) > 0 {
		body = m.table.View()
	}
	for _, line := range strings.Split(runsBoxStyle.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

// gridPicker shows every grid size with the current one highlighted. On a
// narrow window only the current grid is shown.
func (m ScoreboardModel) gridPicker() string {
	if len(m.grids) == 0 {
		return ""
	}

	labels := make([]string, len(m.grids))
	for i, g := range m.grids {
		label := fmt.Sprintf(" %dx%d ", g.Rows, g.Cols)
		if i == m.current {
			labels[i] = gridActiveStyle.Render(label)
		} else {
			labels[i] = gridIdleStyle.Render(label)
		}
	}

	line := strings.Join(labels, " ")
	if lipgloss.Width(line) > m.width {
		g := m.grids[m.current]
		line = fmt.Sprintf("< %dx%d >", g.Rows, g.Cols)
	}
	return line
}

// statsLine summarizes all runs of the selected grid.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No runs yet"
	}
	return fmt.Sprintf("Runs: %d  Wins: %d  Best: %d  Best tile: %d  Avg: %.0f",
		m.stats.GamesCount, m.stats.WinsCount, m.stats.HighScore, m.stats.MaxTile, m.stats.AvgScore)
}

// IsGoingBack reports whether the player asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen, opened on gameID when set.
// goBack is false when the player quit.
func RunScoreboard(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)
	if gameID != "" {
		model.SelectGame(gameID)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
