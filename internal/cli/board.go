package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/relplan/internal/cli/formatter"
	"github.com/alexanderramin/relplan/internal/contract"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App, opts *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Browse conflicts, capacity and health in one screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("board needs a terminal; use conflicts, capacity or health instead")
			}
			p := tea.NewProgram(newBoardModel(app, opts.release),
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}

type boardTab int

const (
	tabConflicts boardTab = iota
	tabCapacity
	tabHealth
	tabCount
)

func (t boardTab) String() string {
	switch t {
	case tabConflicts:
		return "Conflicts"
	case tabCapacity:
		return "Capacity"
	default:
		return "Health"
	}
}

type boardKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Up, k.Down, k.Reload, k.Help, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Up, k.Down},
		{k.Reload, k.Help, k.Quit},
	}
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next view")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "previous view")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// boardLoadedMsg carries the three reports for the board's release.
type boardLoadedMsg struct {
	conflicts *contract.ConflictsResponse
	capacity  *contract.CapacityResponse
	health    *contract.HealthResponse
	err       error
}

// boardModel is a read-only, tabbed view over one release. The cursor picks
// a conflict or a sprint whose detail is shown below the list.
type boardModel struct {
	app        *App
	releaseRef string

	keys boardKeyMap
	help help.Model

	tab     boardTab
	cursor  int
	loading bool
	err     error

	conflicts *contract.ConflictsResponse
	capacity  *contract.CapacityResponse
	health    *contract.HealthResponse
}

func newBoardModel(app *App, releaseRef string) *boardModel {
	return &boardModel{
		app:        app,
		releaseRef: releaseRef,
		keys:       newBoardKeyMap(),
		help:       help.New(),
		loading:    true,
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) load() tea.Cmd {
	app, ref := m.app, m.releaseRef
	return func() tea.Msg {
		ctx := context.Background()
		req := contract.NewAnalysisRequest(ref)
		var msg boardLoadedMsg
		if msg.conflicts, msg.err = app.Analysis.Conflicts(ctx, req); msg.err != nil {
			return msg
		}
		if msg.capacity, msg.err = app.Analysis.Capacity(ctx, req); msg.err != nil {
			return msg
		}
		msg.health, msg.err = app.Analysis.Health(ctx, req)
		return msg
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.conflicts, m.capacity, m.health = msg.conflicts, msg.capacity, msg.health
		m.cursor = min(m.cursor, max(0, m.rows()-1))
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.switchTab((m.tab + 1) % tabCount)
		case key.Matches(msg, m.keys.Prev):
			m.switchTab((m.tab + tabCount - 1) % tabCount)
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.rows()-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Reload):
			m.loading = true
			return m, m.load()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *boardModel) switchTab(t boardTab) {
	m.tab = t
	m.cursor = 0
}

// rows is the number of selectable lines on the current tab.
func (m *boardModel) rows() int {
	switch m.tab {
	case tabConflicts:
		if m.conflicts != nil {
			return len(m.conflicts.Conflicts)
		}
	case tabCapacity:
		if m.capacity != nil {
			return len(m.capacity.Sprints)
		}
	}
	return 0
}

func (m *boardModel) View() string {
	var b strings.Builder
	b.WriteString(m.tabBar() + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case m.loading:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	default:
		switch m.tab {
		case tabConflicts:
			b.WriteString(m.conflictsView())
		case tabCapacity:
			b.WriteString(m.capacityView())
		case tabHealth:
			b.WriteString(formatter.FormatHealth(m.health))
		}
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *boardModel) tabBar() string {
	active := lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true).Underline(true)
	parts := make([]string, 0, tabCount)
	for t := boardTab(0); t < tabCount; t++ {
		if t == m.tab {
			parts = append(parts, active.Render(t.String()))
		} else {
			parts = append(parts, formatter.Dim(t.String()))
		}
	}
	title := ""
	if m.capacity != nil {
		title = formatter.Bold(m.capacity.Release.Name) + "  "
	}
	return title + strings.Join(parts, "  ")
}

func (m *boardModel) marker(i int) string {
	if i == m.cursor {
		return formatter.StyleHeader.Render("▸ ")
	}
	return "  "
}

func (m *boardModel) conflictsView() string {
	resp := m.conflicts
	if len(resp.Conflicts) == 0 {
		return formatter.StyleGreen.Render("No scheduling conflicts.") + "\n"
	}

	var b strings.Builder
	for i, c := range resp.Conflicts {
		b.WriteString(fmt.Sprintf("%s%-12s %s  %s\n", m.marker(i), c.Assignee, c.Title,
			formatter.Dim(formatter.DateSpan(c.StartDate, c.EndDate))))
	}

	sel := resp.Conflicts[m.cursor]
	b.WriteString("\n" + formatter.Header(sel.Title) + "\n")
	for _, p := range sel.Others {
		b.WriteString(fmt.Sprintf("  overlaps %s %s  %s\n", p.Title,
			formatter.Dim(formatter.DateSpan(p.OverlapStart, p.OverlapEnd)),
			formatter.Dim(fmt.Sprintf("%d working days", p.OverlapDays))))
	}
	return b.String()
}

func (m *boardModel) capacityView() string {
	resp := m.capacity
	if len(resp.Sprints) == 0 {
		return formatter.Dim("This release has no sprints.") + "\n"
	}

	var b strings.Builder
	for i, s := range resp.Sprints {
		b.WriteString(fmt.Sprintf("%s%-12s %s %s\n", m.marker(i), s.Name,
			formatter.RenderUtilization(s.UtilizationPct, s.Status, 20), formatter.CapacityPill(s.Status)))
	}

	sel := resp.Sprints[m.cursor]
	b.WriteString("\n" + formatter.Header(sel.Name) + "  " + formatter.Dim(formatter.DateSpan(sel.StartDate, sel.EndDate)) + "\n")
	b.WriteString(fmt.Sprintf("  %d working days, %d holiday, %d PTO\n", sel.WorkingDays, sel.HolidayDays, sel.PTODays))
	b.WriteString(fmt.Sprintf("  %d team-days available, %s planned across %d tickets\n",
		sel.TotalTeamDays, formatter.FormatDays(sel.PlannedDays), sel.ItemCount))
	if len(sel.Members) > 0 {
		b.WriteString("  " + formatter.Dim("team: "+strings.Join(sel.Members, ", ")) + "\n")
	}
	return b.String()
}
