package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/six78/wordle-duel-cli/internal/config"
	"github.com/six78/wordle-duel-cli/internal/transport"
	"github.com/six78/wordle-duel-cli/internal/view/commands"
	"github.com/six78/wordle-duel-cli/internal/view/components/connectionview"
	"github.com/six78/wordle-duel-cli/internal/view/components/errorview"
	"github.com/six78/wordle-duel-cli/internal/view/components/eventhandler"
	"github.com/six78/wordle-duel-cli/internal/view/components/gridview"
	"github.com/six78/wordle-duel-cli/internal/view/components/playersview"
	"github.com/six78/wordle-duel-cli/internal/view/components/shortcutsview"
	"github.com/six78/wordle-duel-cli/internal/view/components/toastview"
	"github.com/six78/wordle-duel-cli/internal/view/components/userinput"
	"github.com/six78/wordle-duel-cli/internal/view/messages"
	"github.com/six78/wordle-duel-cli/internal/view/states"
	"github.com/six78/wordle-duel-cli/internal/view/update"
	"github.com/six78/wordle-duel-cli/pkg/game"
	"github.com/six78/wordle-duel-cli/pkg/match"
)

type model struct {
	game      *game.Game
	transport transport.Service

	// Actual state that will be rendered in components.
	// This is filled from app during Update stage.
	state            states.AppState
	fatalError       error
	gameStatus       game.Status
	gameState        *match.State
	connectionStatus transport.ConnectionStatus

	// UI components state
	errorView             errorview.Model
	playersView           playersview.Model
	gridView              gridview.Model
	toastView             toastview.Model
	shortcutsView         shortcutsview.Model
	connectionView        connectionview.Model
	gameEventHandler      eventhandler.Model[game.Update, messages.GameUpdateMessage]
	transportEventHandler eventhandler.Model[transport.ConnectionStatus, messages.ConnectionStatus]

	// Components to be rendered
	input   userinput.Model
	spinner spinner.Model
}

func initialModel(g *game.Game, t transport.Service) model {
	return model{
		game:      g,
		transport: t,
		// Initial model values
		state:      states.Initializing,
		gameStatus: g.Status(),
		gameState:  nil,
		// View components
		input:          userinput.New(),
		spinner:        createSpinner(),
		errorView:      errorview.New(),
		playersView:    playersview.New(),
		gridView:       gridview.New(),
		toastView:      toastview.New(toastview.DefaultDuration),
		shortcutsView:  shortcutsview.New(),
		connectionView: connectionview.New(),
		gameEventHandler: eventhandler.New[game.Update, messages.GameUpdateMessage](
			func(update game.Update) messages.GameUpdateMessage {
				return messages.GameUpdateMessage{Update: update}
			},
		),
		transportEventHandler: eventhandler.New[transport.ConnectionStatus, messages.ConnectionStatus](
			func(status transport.ConnectionStatus) messages.ConnectionStatus {
				return messages.ConnectionStatus{Status: status}
			},
		),
	}
}

func createSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return s
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.input.Init(),
		m.spinner.Tick,
		m.errorView.Init(),
		m.playersView.Init(),
		m.gridView.Init(),
		m.toastView.Init(),
		m.shortcutsView.Init(),
		m.connectionView.Init(),
		commands.InitializeApp(m.game, m.transport),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := update.NewUpdateCommands()

	switchToState := func(state states.AppState) {
		m.state = state
		cmds.AppendMessage(messages.AppStateMessage{State: state})
	}

	switch msg := msg.(type) {
	case messages.FatalErrorMessage:
		m.fatalError = msg.Err

	case messages.AppStateFinishedMessage:
		switch msg.State {
		case states.Initializing:
			// Subscribe to updates when app initialized
			cmds.AppendCommand(m.transportEventHandler.Init(
				m.transport.SubscribeToConnectionStatus(),
				m.transport.ConnectionStatus(),
			))
			cmds.AppendCommand(m.gameEventHandler.Init(
				m.game.SubscribeToUpdates(),
				game.Update{
					Status: m.game.Status(),
					Player: m.game.Player(),
					State:  m.game.CurrentState(),
				},
			))

			switchToState(states.InputPlayerName)
			m.input.SetValue(m.game.Nickname())
			if config.PlayerName() != "" {
				cmds.AppendCommand(commands.Connect(m.game, config.PlayerName()))
			}

		case states.InputPlayerName:
			m.input.Reset()
			switchToState(states.Playing)
			cmds.AppendCommand(commands.Tick(m.game))

		case states.Playing:
			break
		}

	case messages.ConnectionStatus:
		m.connectionStatus = msg.Status

	case messages.GameUpdateMessage:
		m.gameStatus = msg.Update.Status
		m.gameState = msg.Update.State

	case messages.Tick:
		if m.state == states.Playing {
			cmds.AppendCommand(commands.Tick(m.game))
		}

	case tea.KeyMsg:
		if key.Matches(msg, commands.DefaultKeyMap.Quit) {
			cmds.AppendCommand(commands.QuitApp(m.game))
			break
		}

		if m.input.Focused() {
			if msg.Type == tea.KeyEnter {
				cmds.AppendCommand(processPlayerNameInput(&m, m.input.Value()))
			}
			break
		}

		cmds.AppendCommand(processGameKey(&m, msg))
	}

	m.input, cmds.InputCommand = m.input.Update(msg)
	m.spinner, cmds.SpinnerCommand = m.spinner.Update(msg)
	m.errorView = m.errorView.Update(msg)
	m.playersView = m.playersView.Update(msg)
	m.gridView = m.gridView.Update(msg)
	m.toastView, cmds.ToastCommand = m.toastView.Update(msg)
	m.shortcutsView = m.shortcutsView.Update(msg)
	m.connectionView = m.connectionView.Update(msg)
	m.gameEventHandler, cmds.GameEventHandlerCommand = m.gameEventHandler.Update(msg)
	m.transportEventHandler, cmds.TransportEventHandlerCommand = m.transportEventHandler.Update(msg)

	return m, cmds.Batch()
}

func (m model) View() string {
	if m.fatalError != nil {
		return fmt.Sprintf(" ☠️ fatal error: %s\n%s", m.fatalError, renderLogPath())
	}

	view := "\n"
	if config.Debug() {
		view += fmt.Sprintf("%s\n\n", renderLogPath())
	}
	view += m.renderAppState()

	return lipgloss.JoinHorizontal(lipgloss.Left, "  ", view)
}

// Ensure that model fulfils the tea.Model interface at compile time.
// ref: https://www.inngest.com/blog/interactive-clis-with-bubbletea
var _ tea.Model = (*model)(nil)
