package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-fun/internal/config"
	"github.com/vovakirdan/snake-fun/internal/core"
)

// speedOption is one row of the speed picker.
type speedOption struct {
	preset config.DifficultyPreset
	label  string
}

var speedOptions = []speedOption{
	{config.DifficultyEasy, "Easy"},
	{config.DifficultyNormal, "Normal"},
	{config.DifficultyHard, "Hard"},
}

// SpeedModel lets users pick the speed preset of a variant before playing.
// The speed stays constant for the whole run.
type SpeedModel struct {
	title     string
	baseRate  int
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	chosen    bool
	quitting  bool
	back      bool
}

// NewSpeedModel creates a speed picker for a variant running at baseRate
// ticks per second on the normal preset. The cursor starts on Normal.
func NewSpeedModel(title string, baseRate, width, height int) SpeedModel {
	return SpeedModel{
		title:     title,
		baseRate:  baseRate,
		cursor:    1,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m SpeedModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SpeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack:
			m.back = true
			return m, tea.Quit
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(speedOptions)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			m.chosen = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the speed selection.
func (m SpeedModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select speed:", m.width))
	b.WriteString("\n\n")

	for i, opt := range speedOptions {
		rate := config.TickRateForPreset(opt.preset, m.baseRate)
		line := fmt.Sprintf("  %-7s %2d moves/s", opt.label, rate)
		if i == m.cursor {
			line = menuCursorStyle.Render(fmt.Sprintf("> %-7s %2d moves/s", opt.label, rate))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))
	return b.String()
}

// Selected returns the chosen preset, or false if the user left the picker.
func (m SpeedModel) Selected() (config.DifficultyPreset, bool) {
	if !m.chosen {
		return "", false
	}
	return speedOptions[m.cursor].preset, true
}

// SpeedResult holds the result of running the speed picker.
type SpeedResult struct {
	Preset config.DifficultyPreset
	Back   bool // Return to the variant menu
	Quit   bool
}

// RunSpeedSelector runs the speed picker for a variant.
func RunSpeedSelector(title string, baseRate int, cfg core.RuntimeConfig) (SpeedResult, error) {
	p := tea.NewProgram(NewSpeedModel(title, baseRate, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return SpeedResult{}, fmt.Errorf("tui: speed menu: %w", err)
	}
	m, ok := finalModel.(SpeedModel)
	if !ok {
		return SpeedResult{Quit: true}, nil
	}

	preset, chosen := m.Selected()
	switch {
	case chosen:
		return SpeedResult{Preset: preset}, nil
	case m.back:
		return SpeedResult{Back: true}, nil
	default:
		return SpeedResult{Quit: true}, nil
	}
}
