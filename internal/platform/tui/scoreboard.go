package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

const (
	minWidthForPanel = 72  // below this the stats panel collapses to one line
	panelWidth       = 24  // stats panel width, border included
	maxScores        = 100 // rows loaded per mode
)

var (
	borderColor = lipgloss.Color("240")
	accentColor = lipgloss.Color("229")
	mutedColor  = lipgloss.Color("241")

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
	activeModeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	modeStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel lists the best rounds of one mode next to the mode's
// aggregate stats.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	mode      int
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	printer   *message.Printer
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard showing the first registered mode.
// A nil store shows empty tables.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:   registry.List(),
		store:   store,
		printer: message.NewPrinter(language.English),
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

// wide reports whether the stats panel fits beside the table.
func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForPanel
}

// newTable sizes the columns to the space left by the stats panel.
func (m ScoreboardModel) newTable() table.Model {
	avail := m.width - 6
	if m.wide() {
		avail -= panelWidth + 2
	}
	dateW := min(max(avail-6-12-7, 12), 20)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 12},
			{Title: "Level", Width: 7},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(accentColor).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// modeID returns the selected mode, or "" when nothing is registered.
func (m ScoreboardModel) modeID() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

// load reads the selected mode's scores and stats and refills the table.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if id := m.modeID(); m.store != nil && id != "" {
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil && stats.GamesCount > 0 {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			m.printer.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Level),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycle moves the mode selection by delta, wrapping around.
func (m *ScoreboardModel) cycle(delta int) {
	if n := len(m.modes); n > 0 {
		m.mode = ((m.mode+delta)%n + n) % n
		m.load()
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
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
		case key.Matches(msg, m.keys.NextMode):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(accentColor).
		Render(centerText("HIGH SCORES", m.width))
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(centerText(m.modeLine(), m.width))
	b.WriteString("\n\n")

	scores := boxStyle.Render(m.tableContent())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, scores, "  ", m.statsPanel()))
	} else {
		b.WriteString(scores)
		if line := m.statsLine(); line != "" {
			b.WriteString("\n")
			b.WriteString(line)
		}
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(mutedColor).Render(m.help.View(m.keys)))
	return b.String()
}

// modeLine shows every mode with the selected one highlighted, or just the
// selected one between arrows when they do not fit.
func (m ScoreboardModel) modeLine() string {
	if len(m.modes) == 0 {
		return ""
	}
	parts := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			parts[i] = activeModeStyle.Render(g.Title)
		} else {
			parts[i] = modeStyle.Render(g.Title)
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.modes[m.mode].Title)
	}
	return line
}

// statsPanel renders the selected mode's aggregate stats as a box.
func (m ScoreboardModel) statsPanel() string {
	style := boxStyle.Width(panelWidth - 2)
	if m.stats == nil {
		return style.Foreground(mutedColor).Render("No rounds yet")
	}
	label := lipgloss.NewStyle().Foreground(mutedColor)
	rows := [][2]string{
		{"Rounds", m.printer.Sprintf("%d", m.stats.GamesCount)},
		{"Best", m.printer.Sprintf("%d", m.stats.HighScore)},
		{"Average", m.printer.Sprintf("%.0f", m.stats.AvgScore)},
		{"Max level", fmt.Sprintf("%d", m.stats.MaxLevel)},
		{"Avg level", fmt.Sprintf("%.1f", m.stats.AvgLevel)},
		{"Last", m.stats.LastPlayed.Format("Jan 02")},
	}
	inner := panelWidth - 4
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		pad := max(inner-lipgloss.Width(r[0])-lipgloss.Width(r[1]), 1)
		b.WriteString(label.Render(r[0]))
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(r[1])
	}
	return style.Render(b.String())
}

// statsLine is the one-line form of the stats panel for narrow terminals.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil {
		return ""
	}
	return m.printer.Sprintf("%d rounds  |  best %d  |  avg %.0f  |  max level %d",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.MaxLevel)
}

// tableContent renders the table, or a hint when the mode has no scores.
func (m ScoreboardModel) tableContent() string {
	if len(m.scores) == 0 {
		return lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			Padding(2, 4).
			Render("No scores recorded yet.\nClear a few rows to set one!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

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
