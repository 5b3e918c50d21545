package game

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/six78/wordle-duel-cli/internal/config"
	"github.com/six78/wordle-duel-cli/internal/transport"
	"github.com/six78/wordle-duel-cli/pkg/match"
	"github.com/six78/wordle-duel-cli/pkg/protocol"
	"github.com/six78/wordle-duel-cli/pkg/storage"
)

var (
	ErrNotInitialized = errors.New("game not initialized")
	ErrNotFinished    = errors.New("match is not finished")
	ErrIncompleteWord = errors.New("word is incomplete")
	ErrEmptyName      = errors.New("empty player name")
)

type Game struct {
	logger    *zap.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	transport transport.Service
	storage   storage.Service
	clock     clockwork.Clock
	protocol  *protocol.Protocol
	config    configuration

	reducerOptions []match.Option
	typingLimiter  *rate.Limiter
	updates        *EventManager
	initialized    bool

	mutex    sync.Mutex
	status   Status
	nickname string
	player   *protocol.Player
	reducer  *match.Reducer
	state    *match.State

	timer           clockwork.Timer
	timerRound      int
	timerGeneration uint64

	typingTimer clockwork.Timer
	typingWord  string
}

func NewGame(opts []Option) *Game {
	game := &Game{
		config:     defaultConfig,
		status:     StatusIdle,
		timerRound: match.NoRound,
	}

	for _, opt := range opts {
		opt(game)
	}

	if game.ctx == nil {
		game.ctx = context.Background()
	}

	if game.logger == nil {
		game.logger = zap.NewNop()
	}

	if game.protocol == nil {
		game.protocol = protocol.NewProtocol(protocol.DefaultRegistry())
	}

	if game.transport == nil {
		game.logger.Error("transport is required")
		return nil
	}

	if game.clock == nil {
		game.logger.Error("clock is required")
		return nil
	}

	game.ctx, game.cancel = context.WithCancel(game.ctx)
	game.updates = NewEventManager(game.logger)
	game.typingLimiter = rate.NewLimiter(rate.Every(game.config.TypingInterval), 1)

	return game
}

func (g *Game) Initialize() error {
	if g.HasStorage() {
		err := g.storage.Initialize()
		if err != nil {
			return errors.Wrap(err, "failed to create storage")
		}
	}

	g.nickname = g.loadPlayerName()

	sub, err := g.transport.SubscribeToMessages()
	if err != nil {
		return errors.Wrap(err, "failed to subscribe to messages")
	}

	go g.processIncomingMessages(sub)

	g.initialized = true
	g.logger.Info("game initialized", zap.String("nickname", g.nickname))

	return nil
}

func (g *Game) Initialized() bool {
	return g.initialized
}

// Connect opens the connection to the match server. The server starts
// matchmaking as soon as the connection is established.
func (g *Game) Connect() error {
	if !g.initialized {
		return ErrNotInitialized
	}

	g.mutex.Lock()
	g.status = StatusConnecting
	nickname := g.nickname
	g.notify(nil)
	g.mutex.Unlock()

	err := g.transport.Start(nickname)
	if err != nil {
		g.mutex.Lock()
		g.status = StatusIdle
		g.notify(nil)
		g.mutex.Unlock()
		return errors.Wrap(err, "failed to connect")
	}

	return nil
}

func (g *Game) Stop() {
	g.mutex.Lock()
	g.cancelTimer()
	g.cancelTyping()
	g.mutex.Unlock()

	g.cancel()
	g.updates.Close()
}

func (g *Game) processIncomingMessages(sub *transport.MessagesSubscription) {
	if sub.Unsubscribe != nil {
		defer sub.Unsubscribe()
	}

	payloads := g.protocol.DecodeStream(g.ctx, sub.Ch, g.logger)
	for payload := range payloads {
		g.handlePayload(payload)
	}

	if g.ctx.Err() != nil {
		return
	}

	g.logger.Info("messages subscription closed")
	g.handleConnectionClosed()
}

func (g *Game) handlePayload(payload protocol.Payload) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	logger := g.logger.With(zap.String("type", string(payload.MessageType())))
	logger.Debug("handling message", zap.Any("payload", payload))

	switch p := payload.(type) {
	case *protocol.PlayerInfoPayload:
		player := p.Player()
		g.player = &player
		logger.Info("player info received", zap.Any("player", player))
		g.notify(nil)

	case *protocol.MatchingPayload:
		g.resetMatch()
		g.status = StatusMatching
		g.notify(nil)

	case *protocol.GameStartPayload:
		g.startMatch(p, logger)

	case *protocol.PlayAgainTimeoutPayload:
		g.status = StatusIdle
		g.notify(nil)

	case *protocol.GuessPayload, *protocol.PlayAgainPayload:
		logger.Warn("unexpected client message received")

	default:
		if g.reducer == nil {
			logger.Warn("no match in progress, message dropped")
			return
		}
		g.applyTransition(g.reducer.Apply(g.state, payload))
	}
}

func (g *Game) startMatch(start *protocol.GameStartPayload, logger *zap.Logger) {
	if g.player == nil {
		logger.Warn("match started before player info was received")
	}

	g.resetMatch()

	options := append([]match.Option{match.WithLogger(g.logger)}, g.reducerOptions...)
	g.reducer = match.NewReducer(g.player, options...)
	g.state = g.reducer.NewState(start)
	g.status = StatusPlaying

	logger.Info("match started",
		zap.Stringer("player1", start.Player1),
		zap.Stringer("player2", start.Player2),
		zap.Int("maxGuesses", start.MaxGuesses))

	g.notify(nil)
}

func (g *Game) resetMatch() {
	g.cancelTimer()
	g.cancelTyping()
	g.reducer = nil
	g.state = nil
}

func (g *Game) handleConnectionClosed() {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.cancelTyping()

	if g.reducer != nil {
		transition := g.reducer.Close(g.state)
		g.state = transition.State
		g.applyTimer(transition.Timer)
	}

	if g.status != StatusPlaying && g.status != StatusFinished {
		g.status = StatusIdle
	}

	g.notify(nil)
}

// applyTransition must be called with the mutex held.
func (g *Game) applyTransition(transition match.Transition) {
	if transition.Dropped != nil {
		return
	}

	g.state = transition.State
	g.applyTimer(transition.Timer)

	if g.state != nil && g.state.Terminal() {
		g.finishMatch()
	}

	if transition.Changed || len(transition.Notifications) > 0 {
		g.notify(transition.Notifications)
	}
}

func (g *Game) applyTimer(action match.TimerAction) {
	switch action.Command {
	case match.TimerSchedule:
		g.scheduleTimer(action.Round, action.Deadline)
	case match.TimerCancel:
		if g.timer != nil && action.Cancels(g.timerRound) {
			g.cancelTimer()
		}
	}
}

func (g *Game) scheduleTimer(round int, deadline time.Time) {
	g.cancelTimer()

	delay := deadline.Sub(g.clock.Now())
	if delay <= 0 {
		g.logger.Debug("deadline already passed", zap.Int("round", round))
		g.applyTransition(g.reducer.Expire(g.state, round))
		return
	}

	generation := g.timerGeneration
	g.timerRound = round
	g.timer = g.clock.AfterFunc(delay, func() {
		g.expire(generation, round)
	})
}

func (g *Game) cancelTimer() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.timerRound = match.NoRound
	g.timerGeneration++
}

func (g *Game) expire(generation uint64, round int) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if generation != g.timerGeneration || g.reducer == nil {
		return
	}

	g.timer = nil
	g.timerRound = match.NoRound
	g.applyTransition(g.reducer.Expire(g.state, round))
}

func (g *Game) notify(notifications []match.Notification) {
	update := Update{
		Status:        g.status,
		Player:        g.player,
		State:         g.state,
		Notifications: notifications,
	}

	g.logger.Debug("notifying update",
		zap.Stringer("status", update.Status),
		zap.Int("subscribers", g.updates.Count()),
		zap.Int("notifications", len(notifications)),
	)

	g.updates.Send(update)
}

func (g *Game) publish(payload protocol.Payload) error {
	data, err := g.protocol.Marshal(payload)
	if err != nil {
		return err
	}

	err = g.transport.PublishMessage(data)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to publish %s message", payload.MessageType()))
	}

	return nil
}

// Type replaces the word being typed and lets the opponent see it.
func (g *Game) Type(word string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.reducer == nil {
		return match.ErrNoMatch
	}

	transition, err := g.reducer.Input(g.state, word)
	if err != nil {
		return err
	}

	g.applyTransition(transition)
	g.publishTyping(g.state.CurrentWord())

	return nil
}

// publishTyping sends the word right away when the limiter allows it.
// Otherwise the latest word is sent once the limiter has a token.
func (g *Game) publishTyping(word string) {
	g.typingWord = word
	if g.typingTimer != nil {
		return
	}

	now := g.clock.Now()
	reservation := g.typingLimiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay <= 0 {
		g.sendTyping(word)
		return
	}

	g.typingTimer = g.clock.AfterFunc(delay, g.flushTyping)
}

func (g *Game) flushTyping() {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.typingTimer == nil {
		return
	}
	g.typingTimer = nil

	if g.state == nil || !g.state.MyTurn {
		return
	}

	g.sendTyping(g.typingWord)
}

func (g *Game) sendTyping(word string) {
	err := g.publish(&protocol.TypingPayload{Word: word})
	if err != nil {
		g.logger.Warn("failed to publish typing", zap.Error(err))
	}
}

func (g *Game) cancelTyping() {
	if g.typingTimer != nil {
		g.typingTimer.Stop()
		g.typingTimer = nil
	}
	g.typingWord = ""
}

// SubmitGuess sends the current word to the server. The row is filled when
// the feedback arrives.
func (g *Game) SubmitGuess() error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.reducer == nil || g.state == nil {
		return match.ErrNoMatch
	}
	if g.state.Terminal() {
		return match.ErrMatchOver
	}
	if !g.state.MyTurn {
		return match.ErrNotMyTurn
	}

	word := g.state.CurrentWord()
	if len([]rune(word)) != g.state.WordLength() {
		return ErrIncompleteWord
	}

	g.cancelTyping()

	g.logger.Info("submitting guess", zap.String("word", word), zap.Int("round", g.state.CurrentRound))
	return g.publish(&protocol.GuessPayload{Word: word})
}

// PlayAgain answers the server question asked after a match is over.
func (g *Game) PlayAgain(confirm bool) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.status != StatusFinished {
		return ErrNotFinished
	}

	err := g.publish(&protocol.PlayAgainPayload{Confirm: confirm})
	if err != nil {
		return err
	}

	if confirm {
		g.status = StatusMatching
	} else {
		g.status = StatusIdle
	}
	g.notify(nil)

	return nil
}

// Rename changes the nickname used for the next connection.
func (g *Game) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	if g.HasStorage() {
		err := g.storage.SetPlayerName(name)
		if err != nil {
			return errors.Wrap(err, "failed to save player name")
		}
	}

	g.mutex.Lock()
	g.nickname = name
	g.notify(nil)
	g.mutex.Unlock()

	return nil
}

func (g *Game) SubscribeToUpdates() UpdateSubscription {
	return g.updates.Subscribe()
}

func (g *Game) CurrentState() *match.State {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.state
}

func (g *Game) Status() Status {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.status
}

// Player is nil until the server has sent the player info.
func (g *Game) Player() *protocol.Player {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.player
}

func (g *Game) Opponent() *protocol.Player {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if g.state == nil {
		return nil
	}
	return g.state.Opponent(g.player)
}

func (g *Game) Nickname() string {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.nickname
}

func (g *Game) TimeRemaining() time.Duration {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if g.state == nil {
		return 0
	}
	return g.state.TimeRemaining(g.clock.Now())
}

func (g *Game) loadPlayerName() string {
	if g.config.PlayerName != "" {
		return g.config.PlayerName
	}
	if g.HasStorage() {
		if name := g.storage.PlayerName(); name != "" {
			return name
		}
	}
	return config.GeneratePlayerName(g.clock.Now())
}

func nilStorage(s storage.Service) bool {
	return s == nil || reflect.ValueOf(s).IsNil()
}

func (g *Game) HasStorage() bool {
	return !nilStorage(g.storage)
}
