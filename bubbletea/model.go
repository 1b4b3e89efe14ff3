package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/toolrun"
)

var _ tea.Model = Model{}

const (
	inputHeight  = 3
	statusHeight = 1
	borderHeight = 2 // newlines between sections
)

// Model is the Bubble Tea model for the toolrun form.
type Model struct {
	// Input is the prompt editor. Exported for test access.
	Input textarea.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model
	// Spinner animates while a run is in progress.
	Spinner spinner.Model

	run    AgentFunc
	theme  toolrun.Theme
	styles Styles

	blocks     []MessageBlock
	blockFocus int // index of focused collapsible block (-1 = none)

	running bool
	cancel  context.CancelFunc
	eventCh chan toolrun.Event
	doneCh  chan AgentDoneMsg
	answer  string
	outcome string // status of the last finished run
	err     error
	ready   bool
}

// Option configures a Model.
type Option func(*Model)

// WithPrompt replaces the pre-filled prompt.
func WithPrompt(prompt string) Option {
	return func(m *Model) {
		m.Input.SetValue(prompt)
	}
}

// New creates a Model that runs prompts with run. The editor starts with
// DefaultPrompt. Enter submits; Alt+Enter inserts a newline.
func New(run AgentFunc, theme toolrun.Theme, opts ...Option) Model {
	styles := NewStyles(theme)

	ta := textarea.New()
	ta.Placeholder = "Describe what you need..."
	ta.Prompt = "┃ "
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter")
	ta.SetValue(DefaultPrompt)
	ta.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Accent))

	m := Model{
		Input:      ta,
		Spinner:    sp,
		run:        run,
		theme:      theme,
		styles:     styles,
		blockFocus: -1,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Running returns whether a run is in progress.
func (m Model) Running() bool { return m.running }

// Err returns the error of the last run, if any.
func (m Model) Err() error { return m.err }

// Answer returns the final answer of the last run.
func (m Model) Answer() string { return m.answer }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case EventMsg:
		m = m.processEvent(msg.Event)
		m.refresh()
		if m.eventCh != nil {
			return m, listenForEvent(m.eventCh, m.doneCh)
		}
		return m, nil

	case AgentDoneMsg:
		m.running = false
		if m.cancel != nil {
			m.cancel()
		}
		m.cancel = nil
		m.eventCh = nil
		m.doneCh = nil
		m.answer = msg.Answer
		switch {
		case errors.Is(msg.Err, context.Canceled):
			m.outcome = "Cancelled."
		case msg.Err != nil:
			m.err = msg.Err
			m.blocks = append(m.blocks, NewErrorBlock(msg.Err, m.styles))
		default:
			m.outcome = "Done."
		}
		m = m.updateBlockFocus()
		m.refresh()
		cmds = append(cmds, m.Input.Focus())
		return m, tea.Batch(cmds...)
	}

	// Viewport always receives remaining messages for mouse scrolling.
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	vpHeight := msg.Height - inputHeight - statusHeight - borderHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.refresh()

	m.Input.SetWidth(msg.Width)
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running || msg.Alt {
			break
		}
		prompt := strings.TrimSpace(m.Input.Value())
		if prompt == "" {
			return m, nil
		}
		return m.submit(prompt)

	case tea.KeyTab:
		if !m.running && m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.refresh()
			return m, cmd
		}
		return m, nil

	case tea.KeyShiftTab:
		if !m.running {
			m = m.cycleFocusPrev()
		}
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd
	}

	if m.running {
		return m, nil
	}
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// submit starts a fresh run. Output of the previous run is replaced; the
// prompt stays in the editor so it can be edited and resubmitted.
func (m Model) submit(prompt string) (tea.Model, tea.Cmd) {
	m.err = nil
	m.answer = ""
	m.outcome = ""
	m.blocks = []MessageBlock{NewPromptBlock(prompt, m.styles)}
	m.blockFocus = -1
	m.refresh()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.eventCh = make(chan toolrun.Event, 256)
	m.doneCh = make(chan AgentDoneMsg, 1)
	m.running = true

	m.Input.Blur()

	return m, tea.Batch(
		startAgent(ctx, m.run, prompt, m.eventCh, m.doneCh),
		listenForEvent(m.eventCh, m.doneCh),
		m.Spinner.Tick,
	)
}

// refresh re-renders all blocks into the viewport and scrolls to the end.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

// processEvent turns a progress event into a block.
func (m Model) processEvent(evt toolrun.Event) Model {
	switch e := evt.(type) {
	case toolrun.EventToolCall:
		m.blocks = append(m.blocks, NewToolCallBlock(e, m.styles))
	case toolrun.EventToolResult:
		m.blocks = append(m.blocks, NewToolResultBlock(e.Name, e.Content, e.IsError, m.styles))
	case toolrun.EventWarning:
		m.blocks = append(m.blocks, NewWarningBlock(e.Message, m.styles))
	case toolrun.EventAnswer:
		m.blocks = append(m.blocks, NewAnswerBlock(e.Text, m.theme, m.styles))
	}
	return m.updateBlockFocus()
}

func isCollapsible(b MessageBlock) bool {
	c, ok := b.(collapsible)
	return ok && c.Collapsible()
}

// updateBlockFocus focuses the last collapsible block.
func (m Model) updateBlockFocus() Model {
	m.blockFocus = -1
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if isCollapsible(m.blocks[i]) {
			m.blockFocus = i
			return m
		}
	}
	return m
}

// cycleFocusPrev moves blockFocus to the previous collapsible block, wrapping around.
func (m Model) cycleFocusPrev() Model {
	if len(m.blocks) == 0 {
		return m
	}
	start := m.blockFocus - 1
	if start < 0 {
		start = len(m.blocks) - 1
	}
	for i := range len(m.blocks) {
		idx := (start - i + len(m.blocks)) % len(m.blocks)
		if isCollapsible(m.blocks[idx]) {
			m.blockFocus = idx
			return m
		}
	}
	m.blockFocus = -1
	return m
}

func (m Model) statusLine() string {
	if m.running {
		return m.Spinner.View() + " " + m.styles.Muted.Render("Running agent... Ctrl+C to cancel")
	}
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.outcome != "" {
		return m.styles.Muted.Render(m.outcome + " Enter to run again, Tab to expand, Ctrl+C to quit")
	}
	return m.styles.Muted.Render("Enter to send, Alt+Enter for newline, Ctrl+C to quit")
}

// startAgent runs the agent in a goroutine and signals completion.
func startAgent(ctx context.Context, run AgentFunc, prompt string, eventCh chan<- toolrun.Event, doneCh chan<- AgentDoneMsg) tea.Cmd {
	return func() tea.Msg {
		answer, err := run(ctx, prompt, toolrun.NotifierFunc(func(e toolrun.Event) {
			select {
			case eventCh <- e:
			case <-ctx.Done():
			}
		}))
		close(eventCh)
		doneCh <- AgentDoneMsg{Answer: answer, Err: err}
		return nil
	}
}

// listenForEvent waits for the next event from the channel.
// When the channel closes, it returns the AgentDoneMsg from doneCh.
func listenForEvent(ch <-chan toolrun.Event, doneCh <-chan AgentDoneMsg) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return <-doneCh
		}
		return EventMsg{Event: evt}
	}
}
