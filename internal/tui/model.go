// Package tui runs the interactive portfolio terminal.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/d-kuro/termfolio/internal/portfolio"
	"github.com/d-kuro/termfolio/internal/render"
	"github.com/d-kuro/termfolio/internal/terminal"
	"github.com/d-kuro/termfolio/pkg/models"
	"go.uber.org/zap"
)

// footerHeight is the footer line plus its top border.
const footerHeight = 2

// Options configures a Model.
type Options struct {
	Deps       portfolio.Deps
	MaxHistory int
	MaxRecall  int
	// JobTimeout bounds each async command and the startup preload.
	JobTimeout time.Duration
	// Context is the parent of every command context.
	Context context.Context
	Logger  *zap.Logger
	// SkipPreload disables the startup fetch.
	SkipPreload bool
}

// ProfileChanged tells the model the profile section of the config changed.
type ProfileChanged struct {
	Profile models.ProfileConfig
}

type resolvedMsg terminal.Resolved

type preloadedMsg struct {
	jobs []models.Job
	err  error
}

// Model is the bubbletea model of the terminal.
type Model struct {
	state    terminal.State
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	deps       portfolio.Deps
	ctx        context.Context
	jobTimeout time.Duration
	logger     *zap.Logger
	preload    bool

	pending int
	width   int
	height  int
	ready   bool
}

// New creates the terminal model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Deps.Logger == nil {
		opts.Deps.Logger = logger
	}
	timeout := opts.JobTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ti := textinput.New()
	ti.Prompt = promptStyle.Render("$ ")
	ti.Placeholder = `type "help"`
	ti.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(primaryColor)),
	)

	state := terminal.New(
		portfolio.Commands(opts.Deps),
		portfolio.Banner(opts.Deps.Profile),
		terminal.WithMaxHistory(opts.MaxHistory),
		terminal.WithMaxRecall(opts.MaxRecall),
	)

	return Model{
		state:      state,
		input:      ti,
		viewport:   viewport.New(render.DefaultWidth, 20),
		spinner:    sp,
		deps:       opts.Deps,
		ctx:        ctx,
		jobTimeout: timeout,
		logger:     logger,
		preload:    !opts.SkipPreload && opts.Deps.Source != nil,
	}
}

// JobTimeout returns a bound for one command: every attempt timing out
// plus the backoff between attempts, with a second of slack.
func JobTimeout(cfg models.APIConfig) time.Duration {
	attempts := max(cfg.Retries, 1)
	total := time.Duration(attempts) * cfg.Timeout
	for i := 0; i < attempts-1; i++ {
		total += cfg.Backoff << i
	}
	return total + time.Second
}

// State returns the current terminal state.
func (m Model) State() terminal.State {
	return m.state
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.preload {
		cmds = append(cmds, m.preloadCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles input and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-footerHeight-1)
		m.input.Width = max(1, msg.Width-4)
		m.ready = true
		m.refresh(true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resolvedMsg:
		m.pending = max(0, m.pending-1)
		m.state, _ = terminal.Reduce(m.state, terminal.Resolved(msg))
		m.refresh(true)
		return m, nil

	case preloadedMsg:
		if msg.err != nil {
			m.logger.Warn("preload failed", zap.Error(msg.err))
			m.state, _ = terminal.Reduce(m.state, terminal.Resolved{
				Output: render.Error{Message: "Failed to load data"},
			})
		} else {
			m.deps.Jobs = msg.jobs
			m.state, _ = terminal.Reduce(m.state, terminal.SetTable{Table: portfolio.Commands(m.deps)})
		}
		m.refresh(true)
		return m, nil

	case ProfileChanged:
		m.deps.Profile = msg.Profile
		m.state, _ = terminal.Reduce(m.state, terminal.SetTable{Table: portfolio.Commands(m.deps)})
		m.state, _ = terminal.Reduce(m.state, terminal.SetBanner{Banner: portfolio.Banner(msg.Profile)})
		m.refresh(false)
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh(false)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Match on key type so pasted runes such as "end" stay text.
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		var jobs []terminal.Job
		m.state, jobs = terminal.Reduce(m.state, terminal.Submit{Raw: m.input.Value()})
		m.syncInput()
		m.refresh(true)
		return m, m.startJobs(jobs)

	case tea.KeyUp:
		m.state, _ = terminal.Reduce(m.state, terminal.RecallPrevious{})
		m.syncInput()
		return m, nil

	case tea.KeyDown:
		m.state, _ = terminal.Reduce(m.state, terminal.RecallNext{})
		m.syncInput()
		return m, nil

	case tea.KeyTab:
		m.state, _ = terminal.Reduce(m.state, terminal.Complete{})
		m.syncInput()
		m.refresh(true)
		return m, nil

	case tea.KeyPgUp:
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
		return m, nil

	case tea.KeyPgDown:
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
		return m, nil

	case tea.KeyHome:
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyEnd:
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state, _ = terminal.Reduce(m.state, terminal.SetInput{Value: m.input.Value()})
	return m, cmd
}

// syncInput copies the reducer's input line into the text field.
func (m *Model) syncInput() {
	if m.input.Value() == m.state.Input {
		return
	}
	m.input.SetValue(m.state.Input)
	m.input.CursorEnd()
}

func (m *Model) startJobs(jobs []terminal.Job) tea.Cmd {
	if len(jobs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(jobs)+1)
	for _, job := range jobs {
		m.logger.Debug("running command", zap.String("command", job.Command.Name))
		cmds = append(cmds, m.jobCmd(job))
	}
	if m.pending == 0 {
		cmds = append(cmds, m.spinner.Tick)
	}
	m.pending += len(jobs)
	return tea.Batch(cmds...)
}

func (m Model) jobCmd(job terminal.Job) tea.Cmd {
	parent, timeout := m.ctx, m.jobTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return resolvedMsg(job.Run(ctx))
	}
}

func (m Model) preloadCmd() tea.Cmd {
	parent, timeout, src := m.ctx, m.jobTimeout, m.deps.Source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		jobs, err := portfolio.Preload(ctx, src)
		return preloadedMsg{jobs: jobs, err: err}
	}
}

// refresh re-renders the history into the viewport.
func (m *Model) refresh(follow bool) {
	m.viewport.SetContent(m.renderHistory())
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m Model) renderHistory() string {
	width := m.viewport.Width
	if width <= 0 {
		width = render.DefaultWidth
	}

	blocks := make([]string, 0, len(m.state.History))
	for _, e := range m.state.History {
		switch e.Kind {
		case terminal.KindBanner, terminal.KindOutput:
			blocks = append(blocks, e.Output.Render(width)+"\n")
		case terminal.KindCommand:
			blocks = append(blocks, promptStyle.Render("$ ")+echoStyle.Render(e.Text))
		case terminal.KindError:
			blocks = append(blocks, errorLineStyle.Render(e.Text)+"\n")
		case terminal.KindLoading:
			blocks = append(blocks, m.spinner.View()+" "+loadingStyle.Render("Loading "+e.Text+"..."))
		case terminal.KindListing:
			blocks = append(blocks, listingStyle.Render(e.Text)+"\n")
		}
	}
	return strings.Join(blocks, "\n")
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.input.View(),
		m.renderFooter(),
	)
}

func (m Model) renderFooter() string {
	scrollInfo := scrollInfoStyle.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	help := helpStyle.Render("↑/↓: recall • Tab: complete • PgUp/PgDn: scroll • Esc: quit")

	footerContent := lipgloss.JoinHorizontal(lipgloss.Left,
		help,
		strings.Repeat(" ", max(0, m.width-lipgloss.Width(scrollInfo)-lipgloss.Width(help))),
		scrollInfo)

	return footerStyle.Width(m.width).Render(footerContent)
}
