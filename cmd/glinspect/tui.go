package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/errors"
	"github.com/wippyai/glinspect/handler"
	"github.com/wippyai/glinspect/report"
	"github.com/wippyai/glinspect/resource"
	"github.com/wippyai/glinspect/watch"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	ifaceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newTUICommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse interfaces and resources interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.Unsupported(errors.PhaseLoad, "tui without a terminal; use show")
			}
			s, err := openSession(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.initialize(opts.logger); err != nil {
				return err
			}

			m := newBrowserModel(s, opts.logger)
			p := tea.NewProgram(m)

			if opts.cfg.Watch.Enabled {
				fw, err := watch.New(s.paths, opts.cfg.Watch.Debounce, func(files []string) {
					p.Send(sourcesChangedMsg{files: files})
				})
				if err != nil {
					return err
				}
				if err := fw.Start(); err != nil {
					return err
				}
				defer func() { _ = fw.Stop() }()
			}

			// Update runs on this goroutine, so GL calls made while handling
			// messages stay on the context thread.
			_, err = p.Run()
			return err
		},
	}
}

type browserState int

const (
	stateSelectInterface browserState = iota
	stateBrowse
	stateLookup
	stateDetail
)

type sourcesChangedMsg struct {
	files []string
}

type browserModel struct {
	err      error
	session  *session
	logger   *zap.Logger
	printer  *report.Printer
	entry    resource.Entry
	status   string
	ifaces   []catalog.Interface
	entries  []resource.Entry
	input    textinput.Model
	selected int
	cursor   int
	state    browserState
}

func newBrowserModel(s *session, logger *zap.Logger) *browserModel {
	m := &browserModel{
		session: s,
		logger:  logger,
		printer: report.New(os.Stdout, report.Options{}),
		state:   stateSelectInterface,
	}
	m.refresh()
	return m
}

// refresh reloads the interface list after a new generation.
func (m *browserModel) refresh() {
	m.ifaces = m.ifaces[:0]
	failures := m.session.insp.Failures()
	for _, iface := range m.session.insp.Interfaces() {
		entries, _ := m.session.insp.Container(iface)
		if len(entries) > 0 || failures[iface] != nil {
			m.ifaces = append(m.ifaces, iface)
		}
	}
	m.selected = min(m.selected, max(len(m.ifaces)-1, 0))
	m.entries = nil
	m.entry = nil
	m.cursor = 0
	m.state = stateSelectInterface
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateLookup {
			return m.updateLookup(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			m.move(-1)

		case "down", "j":
			m.move(1)

		case "enter":
			switch m.state {
			case stateSelectInterface:
				if len(m.ifaces) == 0 {
					break
				}
				m.entries, m.err = m.session.insp.Container(m.current())
				m.cursor = 0
				m.state = stateBrowse
			case stateBrowse:
				if m.cursor < len(m.entries) {
					m.entry = m.entries[m.cursor]
					m.state = stateDetail
				}
			}

		case "/":
			if m.state == stateSelectInterface || m.state == stateBrowse {
				m.startLookup()
			}

		case "s":
			if m.state == stateDetail {
				m.cycleSubroutine()
			}

		case "r":
			m.relink("manual relink")

		case "esc":
			switch m.state {
			case stateBrowse:
				m.state = stateSelectInterface
				m.err = nil
			case stateDetail:
				m.state = stateBrowse
				m.err = nil
			}
		}

	case sourcesChangedMsg:
		m.relink(strings.Join(msg.files, ", ") + " changed")
	}

	return m, nil
}

func (m *browserModel) updateLookup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateBrowse
		if m.entries == nil {
			m.state = stateSelectInterface
		}
		return m, nil
	case "enter":
		e, err := m.session.insp.ByName(m.current(), m.input.Value())
		if err != nil {
			m.err = err
			m.status = ""
			if similar := report.Suggest(m.session.insp, m.current(), m.input.Value(), 3); len(similar) > 0 {
				m.status = "did you mean: " + strings.Join(similar, ", ")
			}
			return m, nil
		}
		m.entries, _ = m.session.insp.Container(m.current())
		m.cursor = int(e.Base().Index)
		m.entry = e
		m.err = nil
		m.state = stateDetail
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *browserModel) startLookup() {
	if len(m.ifaces) == 0 {
		return
	}
	ti := textinput.New()
	ti.Placeholder = "resource name"
	ti.Prompt = m.current().String() + " name: "
	ti.Width = 40
	ti.Focus()
	m.input = ti
	m.err = nil
	m.state = stateLookup
}

func (m *browserModel) move(delta int) {
	switch m.state {
	case stateSelectInterface:
		m.selected = clamp(m.selected+delta, len(m.ifaces))
	case stateBrowse:
		m.cursor = clamp(m.cursor+delta, len(m.entries))
	}
}

func clamp(v, n int) int {
	if v < 0 || n == 0 {
		return 0
	}
	return min(v, n-1)
}

func (m *browserModel) current() catalog.Interface {
	if len(m.ifaces) == 0 {
		return 0
	}
	return m.ifaces[m.selected]
}

func (m *browserModel) relink(reason string) {
	iface := m.current()
	if !m.session.relink(m.logger) {
		m.status = ""
		m.err = errors.New(errors.PhaseRelink, errors.KindCompile).
			Detail("%s: relink failed, keeping generation %d", reason, m.session.insp.Generation()).
			Build()
		return
	}
	m.refresh()
	for i, candidate := range m.ifaces {
		if candidate == iface {
			m.selected = i
		}
	}
	m.err = nil
	m.status = fmt.Sprintf("%s: generation %d", reason, m.session.insp.Generation())
}

// cycleSubroutine selects the next compatible subroutine of the shown
// subroutine uniform and uploads the selection.
func (m *browserModel) cycleSubroutine() {
	u, ok := m.entry.(*handler.SubroutineUniform)
	if !ok || len(u.Compatible) == 0 {
		return
	}
	stage, _ := m.current().Stage()
	subs := m.session.handlers.Subroutines[stage]
	if subs == nil {
		return
	}
	pos := 0
	for i, e := range u.Compatible {
		if e.Base().Index == u.Selected {
			pos = i
		}
	}
	next := u.Compatible[(pos+1)%len(u.Compatible)]
	if err := subs.Select(m.session.insp, u.Name, next.Base().Name); err != nil {
		m.err = err
		return
	}
	if err := m.session.insp.PrepareDraw(); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("%s uses %s", u.Name, u.SelectedName())
}

func (m *browserModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GL Program Inspector"))
	fmt.Fprintf(&b, " %s (program %d, generation %d)\n\n",
		m.session.insp.Name(), m.session.insp.Program(), m.session.insp.Generation())

	switch m.state {
	case stateSelectInterface:
		if len(m.ifaces) == 0 {
			b.WriteString("No active resources.\n")
		}
		for i, iface := range m.ifaces {
			entries, _ := m.session.insp.Container(iface)
			line := fmt.Sprintf("%s (%d)", iface, len(entries))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + ifaceStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • / find by name • r relink • q quit"))

	case stateBrowse:
		fmt.Fprintf(&b, "%s\n\n", ifaceStyle.Render(m.current().String()))
		if failure := m.session.insp.Failures()[m.current()]; failure != nil {
			b.WriteString(errorStyle.Render("error: " + failure.Error()))
			b.WriteString("\n")
		}
		for i, e := range m.entries {
			name := e.Base().Name
			if name == "" {
				name = report.Unnamed
			}
			line := fmt.Sprintf("[%d] %s", e.Base().Index, name)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter details • / find by name • esc back"))

	case stateLookup:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter find • esc back"))

	case stateDetail:
		props, _ := catalog.PropertiesFor(m.current())
		b.WriteString(ifaceStyle.Render(m.current().String()))
		b.WriteString("\n")
		b.WriteString(m.printer.Entry(m.entry, props))
		b.WriteString("\n")
		help := "esc back • r relink • q quit"
		if _, ok := m.entry.(*handler.SubroutineUniform); ok {
			help = "s next subroutine • " + help
		}
		b.WriteString(helpStyle.Render(help))
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	return b.String()
}
