package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
	"github.com/lexcodex/sysdiag/ops"
	"github.com/lexcodex/sysdiag/render"
)

type shellPhase int

const (
	phaseBrowse shellPhase = iota
	phaseParams
	phaseRunning
	phaseResult
)

var (
	shellTitleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	shellStatusStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	shellErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Padding(0, 1)
)

type opItem struct {
	op diag.Operation
}

func (i opItem) Title() string       { return i.op.Name }
func (i opItem) Description() string { return i.op.Description }
func (i opItem) FilterValue() string { return i.op.Name }

type resultMsg struct {
	op      string
	output  string
	elapsed time.Duration
	err     error
}

type shellModel struct {
	phase    shellPhase
	list     list.Model
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	selected diag.Operation
	errText  string
	width    int
	height   int
}

func newShellModel(cfg *config.Config) shellModel {
	operations := ops.All(cfg)
	items := make([]list.Item, 0, len(operations))
	for _, op := range operations {
		items = append(items, opItem{op: op})
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "sysdiag diagnostics"
	l.SetShowStatusBar(false)

	input := textinput.New()
	input.Placeholder = "name=value name2=value2"

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return shellModel{
		phase:    phaseBrowse,
		list:     l,
		input:    input,
		viewport: viewport.New(0, 0),
		spinner:  sp,
	}
}

func (m shellModel) Init() tea.Cmd { return nil }

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 3
		return m, nil
	case resultMsg:
		if msg.err != nil {
			m.phase = phaseBrowse
			m.errText = msg.err.Error()
			return m, nil
		}
		m.phase = phaseResult
		m.errText = ""
		m.viewport.SetContent(msg.output)
		m.viewport.GotoTop()
		return m, nil
	case spinner.TickMsg:
		if m.phase == phaseRunning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateActive(msg)
}

func (m shellModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseBrowse:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			item, ok := m.list.SelectedItem().(opItem)
			if !ok {
				return m, nil
			}
			m.selected = item.op
			m.errText = ""
			if len(item.op.Params) > 0 {
				m.phase = phaseParams
				m.input.SetValue(defaultArgs(item.op.Params))
				m.input.Focus()
				return m, textinput.Blink
			}
			m.phase = phaseRunning
			return m, tea.Batch(m.spinner.Tick, runOperation(item.op, nil))
		}
	case phaseParams:
		switch msg.String() {
		case "esc":
			m.phase = phaseBrowse
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			args, err := parseShellArgs(m.input.Value())
			if err != nil {
				m.errText = err.Error()
				return m, nil
			}
			m.phase = phaseRunning
			return m, tea.Batch(m.spinner.Tick, runOperation(m.selected, args))
		}
	case phaseResult:
		switch msg.String() {
		case "esc", "q":
			m.phase = phaseBrowse
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
	case phaseRunning:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}
	return m.updateActive(msg)
}

func (m shellModel) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.phase {
	case phaseBrowse:
		m.list, cmd = m.list.Update(msg)
	case phaseParams:
		m.input, cmd = m.input.Update(msg)
	case phaseResult:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m shellModel) View() string {
	switch m.phase {
	case phaseParams:
		var b strings.Builder
		b.WriteString(shellTitleStyle.Render(m.selected.Name) + "\n")
		b.WriteString(shellStatusStyle.Render(paramsHelp(m.selected.Params)) + "\n\n")
		b.WriteString(m.input.View() + "\n")
		if m.errText != "" {
			b.WriteString(shellErrorStyle.Render(m.errText) + "\n")
		}
		b.WriteString(shellStatusStyle.Render("enter: run · esc: back"))
		return b.String()
	case phaseRunning:
		return shellTitleStyle.Render(m.selected.Name) + "\n" + m.spinner.View() + " running..."
	case phaseResult:
		footer := shellStatusStyle.Render("esc: back · q: back · ctrl+c: quit")
		return shellTitleStyle.Render(m.selected.Name) + "\n" + m.viewport.View() + "\n" + footer
	default:
		view := m.list.View()
		if m.errText != "" {
			view += "\n" + shellErrorStyle.Render(m.errText)
		}
		return view
	}
}

func runOperation(op diag.Operation, args map[string]any) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		rec, err := op.Run(context.Background(), args)
		if err != nil {
			return resultMsg{op: op.Name, err: err}
		}
		out, err := render.Render(rec, render.FormatText)
		if err != nil {
			return resultMsg{op: op.Name, err: err}
		}
		return resultMsg{op: op.Name, output: out, elapsed: time.Since(start)}
	}
}

// parseShellArgs splits "name=value" tokens into an argument map. Values
// stay strings; the readers coerce and validate them.
func parseShellArgs(raw string) (map[string]any, error) {
	args := map[string]any{}
	for _, token := range strings.Fields(raw) {
		name, value, ok := strings.Cut(token, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", token)
		}
		args[name] = value
	}
	return args, nil
}

func defaultArgs(params []diag.Param) string {
	var parts []string
	for _, p := range params {
		if p.Default != nil {
			parts = append(parts, fmt.Sprintf("%s=%v", p.Name, p.Default))
		}
	}
	return strings.Join(parts, " ")
}

func paramsHelp(params []diag.Param) string {
	var parts []string
	for _, p := range params {
		req := "optional"
		if p.Required {
			req = "required"
		}
		parts = append(parts, fmt.Sprintf("%s (%s, %s)", p.Name, p.Type, req))
	}
	return strings.Join(parts, " · ")
}
