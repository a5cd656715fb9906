package main

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bruntime "github.com/gosuda/tinybasic/runtime"
)

type model struct {
	cfg      appConfig
	session  *bruntime.Session
	viewport viewport.Model
	input    textinput.Model
	ready    bool
	width    int
	height   int
	status   string
	running  bool
	cancel   context.CancelFunc
	events   <-chan tea.Msg
	pending  *pendingInput
	history  []string
	tail     string
}

var (
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	echoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newModel(cfg appConfig, s *bruntime.Session) model {
	vp := viewport.New(80, 20)
	ti := textinput.New()
	ti.Prompt = promptText
	ti.CharLimit = 4096
	ti.Focus()
	m := model{
		cfg:      cfg,
		session:  s,
		viewport: vp,
		input:    ti,
		status:   "ready",
	}
	if !cfg.quiet {
		m.history = append(m.history, banner, bannerHint)
	}
	return m
}

func waitEvalEvent(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			return msg
		case <-time.After(20 * time.Millisecond):
			return evalPollMsg{}
		}
	}
}

func sendInputResp(ch chan evalInputResp, resp evalInputResp) {
	select {
	case ch <- resp:
	default:
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vh := msg.Height - 2
		if vh < 1 {
			vh = 1
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = vh
		m.input.Width = msg.Width - 4
		m.ready = true
		m.rebuildContent()
		return m, nil

	case evalOutputMsg:
		m.appendOutput(msg.out)
		return m, waitEvalEvent(m.events)

	case evalPollMsg:
		if m.running && m.pending == nil {
			return m, waitEvalEvent(m.events)
		}
		return m, nil

	case evalPromptMsg:
		m.pending = &pendingInput{req: msg.req, resp: msg.resp}
		m.input.SetValue("")
		m.input.Prompt = ""
		m.status = "INPUT " + msg.req.Name + ": input wait"
		return m, nil

	case evalDoneMsg:
		m.running = false
		m.pending = nil
		m.events = nil
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.input.Prompt = promptText
		if msg.err != nil {
			m.appendLine(errStyle.Render(describeError(msg.err)))
		}
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			if !m.running {
				return m, tea.Quit
			}
			if m.pending != nil {
				sendInputResp(m.pending.resp, evalInputResp{err: context.Canceled})
				m.pending = nil
			}
			if m.cancel != nil {
				m.cancel()
			}
			m.status = "interrupting"
			return m, waitEvalEvent(m.events)

		case tea.KeyEnter:
			if m.pending != nil {
				val := m.input.Value()
				m.tail += val
				m.appendLine("")
				sendInputResp(m.pending.resp, evalInputResp{value: val})
				m.pending = nil
				m.input.SetValue("")
				m.status = "running"
				return m, waitEvalEvent(m.events)
			}
			if m.running {
				return m, nil
			}
			return m.submit()

		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.SetValue("")
	m.appendLine(echoStyle.Render(promptText + line))
	if strings.TrimSpace(line) == "" {
		return m, nil
	}
	if line == exitCommand {
		return m, tea.Quit
	}
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan tea.Msg, 256)
	go runEval(ctx, m.session, line, events)
	m.cancel = cancel
	m.events = events
	m.running = true
	m.status = "running"
	return m, waitEvalEvent(events)
}

func (m model) View() string {
	if !m.ready {
		return "initializing..."
	}
	parts := []string{m.viewport.View()}
	if m.running && m.pending == nil {
		parts = append(parts, statusStyle.Render("(running, ctrl+c to interrupt)"))
	} else {
		parts = append(parts, inputStyle.Render(m.input.View()))
	}
	parts = append(parts, statusStyle.Render(m.status))
	return strings.Join(parts, "\n")
}

func (m *model) appendOutput(out bruntime.Output) {
	if out.NewLine {
		m.appendLine(out.Text)
		return
	}
	m.tail += out.Text
	m.rebuildContent()
}

func (m *model) appendLine(text string) {
	m.history = append(m.history, m.tail+text)
	m.tail = ""
	m.rebuildContent()
}

func (m *model) rebuildContent() {
	content := strings.Join(m.history, "\n")
	if m.tail != "" {
		if content != "" {
			content += "\n"
		}
		content += m.tail
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}
