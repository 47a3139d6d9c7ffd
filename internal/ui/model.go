package ui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"ticketgrid/internal/collection"
	"ticketgrid/internal/config"
	"ticketgrid/internal/eventbus"
	"ticketgrid/internal/feed"
	"ticketgrid/internal/ui/commands"
	"ticketgrid/internal/ui/handlers"
	"ticketgrid/internal/ui/input"
	inputtypes "ticketgrid/internal/ui/input/types"
	"ticketgrid/internal/ui/state"
	"ticketgrid/internal/ui/views"
)

// Model represents the UI state.
//
// The ticket collection and the feed are only touched from Update, so the
// model owns them without locking.
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState

	tickets *collection.Collection
	feed    *feed.Feed

	width  int
	height int
	help   help.Model

	// tickGen identifies the live feed tick loop
	tickGen int

	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
}

// Option customizes a Model
type Option func(*modelOptions)

type modelOptions struct {
	firstSeq uint64
	recorder commands.TicketRecorder
}

// WithFirstSeq starts ticket numbering at seq
func WithFirstSeq(seq uint64) Option {
	return func(o *modelOptions) { o.firstSeq = seq }
}

// WithRecorder records every minted ticket through r
func WithRecorder(r commands.TicketRecorder) Option {
	return func(o *modelOptions) { o.recorder = r }
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, opts ...Option) (*Model, error) {
	var mo modelOptions
	for _, opt := range opts {
		opt(&mo)
	}

	f, err := feed.New(feed.Options{
		Columns:  cfg.Feed.Columns,
		Format:   cfg.Feed.UIDFormat,
		Mode:     cfg.Feed.Insert,
		FirstSeq: mo.firstSeq,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create feed: %w", err)
	}

	var pub collection.Publisher
	if bus != nil {
		pub = bus
	}

	appState := state.NewAppState(cfg.Feed.Columns)
	tickets := collection.New(pub)

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		tickets:      tickets,
		feed:         f,
		help:         help.New(),
		renderer:     views.NewRenderer(),
		eventHandler: handlers.NewEventHandler(appState),
		cmdExecutor:  commands.NewExecutor(appState, tickets, f, bus),
		inputHandler: input.New(inputtypes.DefaultKeyMap()),
	}
	if mo.recorder != nil {
		m.cmdExecutor.SetRecorder(mo.recorder)
	}
	return m, nil
}

// Init starts the feed when configured to
func (m *Model) Init() tea.Cmd {
	if !m.config.Feed.Autostart {
		m.state.SetStatus(state.StatusInfo, "Feed paused, press p to start")
		return nil
	}
	return m.cmdExecutor.ExecuteToggleFeed(m.startTicks)
}

// startTicks begins a new tick loop and invalidates any previous one
func (m *Model) startTicks() tea.Cmd {
	m.tickGen++
	return m.nextTick(m.tickGen)
}

func (m *Model) nextTick(gen int) tea.Cmd {
	return tea.Tick(m.config.Feed.Interval.Duration, func(time.Time) tea.Msg {
		return feedTickMsg{gen: gen}
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.state.ViewportHeight = views.GridHeight(msg.Height)
		m.state.EnsureCursorVisible(m.tickets.Len())
		return m, nil

	case tea.KeyMsg:
		if m.state.ShowHelp {
			switch msg.String() {
			case "esc", "?", "q":
				m.state.ShowHelp = false
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}

		actions := m.inputHandler.HandleKey(msg, inputContext{m})
		cmds := []tea.Cmd{}
		for _, action := range actions {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case feedTickMsg:
		if msg.gen != m.tickGen || !m.feed.Running() {
			return m, nil
		}
		m.cmdExecutor.ExecuteMint()
		return m, m.nextTick(msg.gen)

	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)
	}

	return m, nil
}

// handleMouse turns a left press on a grid cell into a click on that ticket
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.state.ShowHelp || m.inputHandler.CurrentMode() != inputtypes.ModeNormal {
		return nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.processAction(inputtypes.NavigateAction{Direction: "up"})
	case msg.Button == tea.MouseButtonWheelDown:
		return m.processAction(inputtypes.NavigateAction{Direction: "down"})
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		index, ok := m.viewState().Layout().HitTest(msg.X, msg.Y)
		if !ok {
			return nil
		}
		if index < m.tickets.Len() {
			m.state.SetCursor(index, m.tickets.Len())
		}
		return m.processAction(inputtypes.ClickAction{Index: index})
	}
	return nil
}

// processAction executes an action produced by the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	slog.Debug("ui: action", "type", action.Type())
	total := m.tickets.Len()

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			m.state.MoveCursor(0, -1, total)
		case "down":
			m.state.MoveCursor(0, 1, total)
		case "left":
			m.state.MoveCursor(-1, 0, total)
		case "right":
			m.state.MoveCursor(1, 0, total)
		case "pageup":
			m.state.SetCursor(m.state.Cursor-m.state.ViewportHeight*m.state.Columns, total)
		case "pagedown":
			m.state.SetCursor(m.state.Cursor+m.state.ViewportHeight*m.state.Columns, total)
		case "home":
			m.state.SetCursor(0, total)
		case "end":
			m.state.SetCursor(total-1, total)
		}

	case inputtypes.ClickAction:
		return m.cmdExecutor.ExecuteClick(a.Index)

	case inputtypes.CleanupSelectionAction:
		return m.cmdExecutor.ExecuteCleanupSelection()

	case inputtypes.DeleteSelectionAction:
		return m.cmdExecutor.ExecuteDeleteSelection()

	case inputtypes.CountSelectedAction:
		return m.cmdExecutor.ExecuteCountSelected()

	case inputtypes.RemoveTicketAction:
		return m.cmdExecutor.ExecuteRemoveTicket(a.Index)

	case inputtypes.ToggleFeedAction:
		return m.cmdExecutor.ExecuteToggleFeed(m.startTicks)

	case inputtypes.CancelAction:
		m.state.SetStatus(state.StatusInfo, a.Message)

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp

	case inputtypes.QuitAction:
		if m.feed.Stop() && m.bus != nil {
			m.bus.Publish(eventbus.FeedStoppedEvent{Minted: m.feed.Minted()})
		}
		return tea.Quit
	}
	return nil
}

// viewState snapshots everything the renderer needs
func (m *Model) viewState() views.ViewState {
	anchor, hasAnchor := m.tickets.Anchor()
	return views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Tickets:        m.tickets.Items(),
		Columns:        m.state.Columns,
		Cursor:         m.state.Cursor,
		Anchor:         anchor,
		HasAnchor:      hasAnchor,
		SelectedCount:  m.tickets.CountSelected(),
		ViewportOffset: m.state.ViewportOffset,
		ViewportHeight: m.state.ViewportHeight,
		StatusMessage:  m.state.StatusMessage,
		StatusKind:     m.state.StatusKind,
		Prompt:         m.inputHandler.Prompt(),
		FeedRunning:    m.feed.Running(),
		Minted:         m.feed.Minted(),
		AuditFailures:  m.state.AuditFailures,
		ShowHelp:       m.state.ShowHelp,
		ShowPositions:  m.config.UI.ShowPositions,
		HelpModel:      m.help,
		Keys:           m.inputHandler.Keys(),
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.viewState())
}

// inputContext exposes the model to the input handler
type inputContext struct {
	m *Model
}

func (c inputContext) CurrentIndex() int   { return c.m.state.Cursor }
func (c inputContext) TotalItems() int     { return c.m.tickets.Len() }
func (c inputContext) HasSelection() bool  { return c.m.tickets.CountSelected() > 0 }
func (c inputContext) SelectedCount() int  { return c.m.tickets.CountSelected() }
func (c inputContext) ConfirmDelete() bool { return c.m.config.UI.ConfirmDelete }
