// Package teaui hosts the Bubble Tea program for the planner viewer.
package teaui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/canvastui/pkg/action"
	"tableflip.dev/canvastui/pkg/app"
	"tableflip.dev/canvastui/pkg/launch"
	"tableflip.dev/canvastui/pkg/loader"
	"tableflip.dev/canvastui/pkg/logging"
	"tableflip.dev/canvastui/pkg/tui/theme"
	"tableflip.dev/canvastui/pkg/tui/view"
)

const (
	DefaultTickInterval  = 250 * time.Millisecond
	DefaultFrameInterval = time.Second / 30
)

// Options configures a Model.
type Options struct {
	Producers []loader.Producer
	Opener    app.Opener
	Theme     *theme.Theme
	Keys      *KeyMap

	TickInterval  time.Duration
	FrameInterval time.Duration
}

type (
	queueReadyMsg  struct{}
	queueClosedMsg struct{}
	tickMsg        time.Time
	frameMsg       time.Time
)

// Model is the terminal driver: it turns terminal events into actions, feeds
// the queue into app.State and paints when a Render action is applied.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	queue     *action.Queue
	producers []loader.Producer
	coord     *loader.Coordinator

	state   *app.State
	painter view.Painter
	keys    KeyMap

	tickEvery  time.Duration
	frameEvery time.Duration

	width  int
	height int
	frame  string
	status string
	errMsg string
	fatal  error
	done   bool
}

// New creates a model. Producers do not start until Init.
func New(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	th := theme.Detect()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	m := &Model{
		ctx:        ctx,
		cancel:     cancel,
		queue:      action.NewQueue(),
		producers:  opts.Producers,
		state:      app.New(opts.Opener),
		painter:    view.Painter{Theme: th},
		keys:       keys,
		tickEvery:  opts.TickInterval,
		frameEvery: opts.FrameInterval,
	}
	if m.tickEvery <= 0 {
		m.tickEvery = DefaultTickInterval
	}
	if m.frameEvery <= 0 {
		m.frameEvery = DefaultFrameInterval
	}
	return m
}

// State exposes the reducer state, mainly for tests.
func (m *Model) State() *app.State { return m.state }

// Err is the fatal error that stopped the program, if any.
func (m *Model) Err() error { return m.fatal }

// Init starts the producers and the timers.
func (m *Model) Init() tea.Cmd {
	m.coord = loader.Start(m.ctx, m.queue, m.producers...)
	return tea.Batch(m.waitForQueue(), m.tick(), m.nextFrame())
}

func (m *Model) waitForQueue() tea.Cmd {
	ch := m.queue.Ready()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return queueClosedMsg{}
		}
		return queueReadyMsg{}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.tickEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) nextFrame() tea.Cmd {
	return tea.Tick(m.frameEvery, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update translates msg into actions and drains the queue.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.push(action.Render) {
			return m, tea.Quit
		}
	case tea.KeyPressMsg:
		if k := m.keys.Action(msg); k != action.None {
			if !m.push(k) {
				return m, tea.Quit
			}
		}
	case tickMsg:
		if !m.push(action.Tick) {
			return m, tea.Quit
		}
		cmds = append(cmds, m.tick())
	case frameMsg:
		if !m.push(action.Render) {
			return m, tea.Quit
		}
		cmds = append(cmds, m.nextFrame())
	case queueReadyMsg:
		cmds = append(cmds, m.waitForQueue())
	case queueClosedMsg:
		return m, nil
	}
	if cmd := m.process(); cmd != nil {
		return m, cmd
	}
	return m, tea.Batch(cmds...)
}

// push enqueues k. A closed queue is fatal.
func (m *Model) push(k action.Kind) bool {
	if err := m.queue.Push(action.Of(k)); err != nil {
		logging.Error("push action", err, "kind", k)
		m.fatal = err
		m.shutdown()
		return false
	}
	return true
}

// process drains everything queued so far and applies it in order.
func (m *Model) process() tea.Cmd {
	pending := m.queue.Drain()
	if len(pending) == 0 {
		return nil
	}
	res := m.state.Drain(pending)
	if res.Err != nil {
		m.report(res.Err)
	}
	if res.Repaint {
		m.frame = m.paint()
	}
	if m.state.ShouldQuit {
		m.shutdown()
		return tea.Quit
	}
	return nil
}

func (m *Model) report(err error) {
	switch {
	case errors.Is(err, launch.ErrCopied):
		m.status, m.errMsg = "URL copied to clipboard", ""
	case errors.Is(err, app.ErrNothingSelected):
		m.status, m.errMsg = "nothing selected", ""
	default:
		m.status, m.errMsg = "", err.Error()
	}
}

func (m *Model) paint() string {
	return m.painter.Paint(m.state, view.Frame{
		Width:  m.width,
		Height: m.height,
		Help:   m.keys.Help(),
		Status: m.status,
		Err:    m.errMsg,
	})
}

// View returns the last painted frame.
func (m *Model) View() string {
	return m.frame
}

func (m *Model) shutdown() {
	if m.done {
		return
	}
	m.done = true
	m.cancel()
	m.queue.Close()
}

// Wait blocks until every producer started by Init has returned.
func (m *Model) Wait() {
	if m.coord != nil {
		m.coord.Wait()
	}
}

// Run launches the interactive program and blocks until it exits and the
// producers have stopped.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	m.shutdown()
	m.Wait()
	if err != nil {
		return err
	}
	return m.fatal
}
