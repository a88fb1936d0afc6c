package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-fun/internal/registry"
	"github.com/vovakirdan/snake-fun/internal/storage"
)

const maxRuns = 100 // Runs loaded per variant

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = boardTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// scoreboardKeys are the scoreboard bindings. They double as the help model.
type scoreboardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next variant")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev variant")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best runs of each variant, one variant at a time.
type ScoreboardModel struct {
	games    []registry.GameInfo
	selected int
	store    *storage.Store
	runs     []storage.Run
	stats    *storage.GameStats

	table table.Model
	help  help.Model
	keys  scoreboardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard over all registered variants.
// A nil store shows empty boards.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.table = newRunTable(width, height)
	if len(m.games) > 0 {
		m.loadRuns(m.games[0].ID)
	}
	return m
}

// newRunTable builds the runs table. The date column takes the spare width.
func newRunTable(width, height int) table.Model {
	dateW := min(max(14, width-36), 20)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Length", Width: 8},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// loadRuns loads the best runs and the stats of a variant.
// Without a store, or on a query error, the board is empty.
func (m *ScoreboardModel) loadRuns(gameID string) {
	m.runs, m.stats = nil, nil
	if m.store != nil {
		if runs, err := m.store.TopRuns(gameID, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.Stats(gameID); err == nil {
			m.stats = stats
		}
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprint(r.Score),
			fmt.Sprint(r.Length),
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycle moves the variant selection by delta, wrapping around.
func (m *ScoreboardModel) cycle(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.selected = (m.selected + delta + len(m.games)) % len(m.games)
	m.loadRuns(m.games[m.selected].ID)
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

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
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = newRunTable(m.width, m.height)
		m.fillTable()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title += " - " + m.games[m.selected].Title
	}

	lines := []string{boardTitleStyle.Render(title), "", m.tabs()}
	if s := m.statsLine(); s != "" {
		lines = append(lines, boardDimStyle.Render(s))
	}
	lines = append(lines, "", boardFrameStyle.Render(m.board()), "", boardDimStyle.Render(m.help.View(m.keys)))

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, l))
		b.WriteString("\n")
	}
	return b.String()
}

// tabs renders the variant strip, or only the current variant when the strip
// does not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return ""
	}
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		style := boardTabStyle
		if i == m.selected {
			style = boardActiveTab
		}
		parts[i] = style.Render(g.Title)
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(strip) > m.width-4 {
		return boardActiveTab.Render("< " + m.games[m.selected].Title + " >")
	}
	return strip
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return ""
	}
	return fmt.Sprintf("Runs: %d  Best: %d  Average: %.0f  Longest snake: %d",
		m.stats.Runs, m.stats.HighScore, m.stats.AvgScore, m.stats.LongestLen)
}

func (m ScoreboardModel) board() string {
	if len(m.runs) == 0 {
		return boardDimStyle.Italic(true).Padding(1, 2).
			Render("No runs recorded yet.\nEat some apples to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

// RunScoreboard runs the scoreboard screen and reports whether the user wants
// to go back to the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: scoreboard: %w", err)
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
