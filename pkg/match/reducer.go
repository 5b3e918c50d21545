package match

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/six78/wordle-duel-cli/pkg/protocol"
)

var (
	ErrNoMatch         = errors.New("no match in progress")
	ErrMatchOver       = errors.New("match is over")
	ErrOutOfRangeEvent = errors.New("event out of range")
	ErrNotMyTurn       = errors.New("not my turn")
	ErrInvalidInput    = errors.New("invalid input")
)

// Transition is the result of applying an event to a state.
// State is the input state itself when nothing changed.
type Transition struct {
	State         *State
	Changed       bool
	Notifications []Notification
	Timer         TimerAction
	Dropped       error
}

type Reducer struct {
	player *protocol.Player
	logger *zap.Logger
	config configuration
}

func NewReducer(player *protocol.Player, opts ...Option) *Reducer {
	r := &Reducer{
		player: player,
		config: defaultConfig,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	return r
}

func (r *Reducer) Player() *protocol.Player {
	return r.player
}

// NewState returns the state of a match that has just started.
func (r *Reducer) NewState(start *protocol.GameStartPayload) *State {
	state := newState(start, r.config.MaxRounds, r.config.WordLength)
	state.FirstRound = r.config.FirstRound
	return state
}

// Apply is the only way incoming payloads change a match. It never modifies
// the given state.
func (r *Reducer) Apply(state *State, payload protocol.Payload) Transition {
	if payload == nil {
		return unchanged(state)
	}

	logger := r.logger.With(zap.String("type", string(payload.MessageType())))

	if state == nil {
		return r.drop(state, logger, ErrNoMatch)
	}

	switch p := payload.(type) {
	case *protocol.RoundStartPayload:
		return r.applyRoundStart(state, p, logger)
	case *protocol.InvalidWordPayload:
		return r.applyInvalidWord(state, p, logger)
	case *protocol.FeedbackPayload:
		return r.applyFeedback(state, p, logger)
	case *protocol.GuessTimeoutPayload:
		return r.applyGuessTimeout(state, p, logger)
	case *protocol.GameOverPayload:
		return r.applyGameOver(state, p)
	case *protocol.TypingPayload:
		return r.applyTyping(state, p, logger)
	default:
		logger.Debug("payload does not affect match state")
		return unchanged(state)
	}
}

func (r *Reducer) applyRoundStart(state *State, p *protocol.RoundStartPayload, logger *zap.Logger) Transition {
	if state.Terminal() {
		return r.drop(state, logger, ErrMatchOver)
	}
	if _, err := r.row(p.Round); err != nil {
		return r.drop(state, logger, err)
	}
	if p.Round < state.CurrentRound {
		return r.drop(state, logger, errors.Wrapf(ErrOutOfRangeEvent, "round %d already passed", p.Round))
	}
	if err := r.checkPlayer(state, p.Player); err != nil {
		return r.drop(state, logger, err)
	}

	next := state.Clone()
	if p.Round != state.CurrentRound {
		next.CurrentGuess = next.CurrentGuess[:0]
		next.OpponentGuess = ""
	}
	next.CurrentRound = p.Round
	next.MyTurn = next.Interactive && p.Player.Is(r.player)

	timer := cancelTimer(AllRounds)
	next.Deadline = nil
	if !p.Deadline.IsZero() {
		deadline := p.Deadline
		next.Deadline = &deadline
		timer = scheduleTimer(p.Round, deadline)
	}

	var notifications []Notification
	if next.MyTurn {
		notifications = []Notification{
			roundNotification(p.Round),
			yourTurnNotification(),
		}
	}

	logger.Debug("round started",
		zap.Int("round", p.Round),
		zap.Bool("myTurn", next.MyTurn))

	return Transition{
		State:         next,
		Changed:       true,
		Notifications: notifications,
		Timer:         timer,
	}
}

func (r *Reducer) applyInvalidWord(state *State, p *protocol.InvalidWordPayload, logger *zap.Logger) Transition {
	if state.Terminal() {
		return r.drop(state, logger, ErrMatchOver)
	}
	if err := r.checkPlayer(state, p.Player); err != nil {
		return r.drop(state, logger, err)
	}

	next := state.Clone()

	if !p.Player.Is(r.player) {
		next.OpponentGuess = ""
		return Transition{
			State:         next,
			Changed:       true,
			Notifications: []Notification{opponentInvalidWordNotification(p.Word)},
			Timer:         keepTimer(),
		}
	}

	next.CurrentGuess = next.CurrentGuess[:0]

	return Transition{
		State:         next,
		Changed:       true,
		Notifications: []Notification{invalidWordNotification(p.Word)},
		Timer:         keepTimer(),
	}
}

func (r *Reducer) applyFeedback(state *State, p *protocol.FeedbackPayload, logger *zap.Logger) Transition {
	if state.Terminal() {
		return r.drop(state, logger, ErrMatchOver)
	}
	row, err := r.row(p.Round)
	if err != nil {
		return r.drop(state, logger, err)
	}
	if err := r.checkPlayer(state, p.Player); err != nil {
		return r.drop(state, logger, err)
	}

	cells := make([]*Cell, r.config.WordLength)
	for _, letter := range p.Feedback {
		if letter.Position < 0 || letter.Position >= len(cells) {
			return r.drop(state, logger, errors.Wrapf(ErrOutOfRangeEvent, "letter position %d", letter.Position))
		}
		if !letter.MatchType.Valid() {
			return r.drop(state, logger, errors.Wrapf(ErrOutOfRangeEvent, "match type %d", letter.MatchType))
		}
		cells[letter.Position] = &Cell{
			Letter:    letter.Letter,
			MatchType: letter.MatchType,
		}
	}

	next := state.Clone()
	next.Guesses[row] = cells
	next.MyTurn = false
	if p.Player == nil || p.Player.Is(r.player) {
		next.CurrentGuess = next.CurrentGuess[:0]
	} else {
		next.OpponentGuess = ""
	}

	return Transition{
		State:   next,
		Changed: true,
		Timer:   cancelTimer(p.Round),
	}
}

func (r *Reducer) applyGuessTimeout(state *State, p *protocol.GuessTimeoutPayload, logger *zap.Logger) Transition {
	if state.Terminal() {
		return r.drop(state, logger, ErrMatchOver)
	}
	row, err := r.row(p.Round)
	if err != nil {
		return r.drop(state, logger, err)
	}
	if err := r.checkPlayer(state, p.Player); err != nil {
		return r.drop(state, logger, err)
	}
	if p.Round != state.CurrentRound {
		return r.drop(state, logger, errors.Wrapf(ErrOutOfRangeEvent, "round %d is not current", p.Round))
	}
	if state.RowFilled(row) {
		return r.drop(state, logger, errors.Wrapf(ErrOutOfRangeEvent, "round %d is already resolved", p.Round))
	}

	cells := make([]*Cell, r.config.WordLength)
	for i := range cells {
		cells[i] = &Cell{MatchType: protocol.Miss}
	}

	next := state.Clone()
	next.Guesses[row] = cells
	next.MyTurn = false
	next.Deadline = nil

	var notification Notification
	if p.Player == nil || p.Player.Is(r.player) {
		next.CurrentGuess = next.CurrentGuess[:0]
		notification = timeoutNotification()
	} else {
		next.OpponentGuess = ""
		notification = opponentTimeoutNotification()
	}

	return Transition{
		State:         next,
		Changed:       true,
		Notifications: []Notification{notification},
		Timer:         cancelTimer(p.Round),
	}
}

func (r *Reducer) applyGameOver(state *State, p *protocol.GameOverPayload) Transition {
	next := state.Clone()
	gameOver := *p
	next.GameOver = &gameOver
	next.MyTurn = false
	next.Deadline = nil

	var notification Notification
	switch {
	case p.Winner == nil:
		notification = drawNotification()
	case p.Winner.Is(r.player):
		notification = winNotification()
	default:
		notification = lossNotification(p.Answer)
	}

	r.logger.Info("game over",
		zap.Stringer("winner", p.Winner),
		zap.String("answer", p.Answer))

	return Transition{
		State:         next,
		Changed:       true,
		Notifications: []Notification{notification},
		Timer:         cancelTimer(AllRounds),
	}
}

func (r *Reducer) applyTyping(state *State, p *protocol.TypingPayload, logger *zap.Logger) Transition {
	if state.Terminal() || p.Player == nil || p.Player.Is(r.player) {
		return unchanged(state)
	}
	if err := r.checkPlayer(state, p.Player); err != nil {
		return r.drop(state, logger, err)
	}

	next := state.Clone()
	next.OpponentGuess = strings.ToUpper(p.Word)

	return Transition{
		State:   next,
		Changed: true,
		Timer:   keepTimer(),
	}
}

// Expire is called when the deadline timer of a round fires. The round is not
// resolved here, the server follows up with a guess timeout.
func (r *Reducer) Expire(state *State, round int) Transition {
	if state == nil || state.Terminal() || round != state.CurrentRound {
		return unchanged(state)
	}

	next := state.Clone()
	next.MyTurn = false
	next.Deadline = nil

	r.logger.Debug("round deadline expired", zap.Int("round", round))

	return Transition{
		State:   next,
		Changed: true,
		Timer:   cancelTimer(round),
	}
}

// Close marks the match as no longer interactive. The state is kept for display.
func (r *Reducer) Close(state *State) Transition {
	if state == nil || !state.Interactive {
		return unchanged(state)
	}

	next := state.Clone()
	next.Interactive = false
	next.MyTurn = false

	return Transition{
		State:   next,
		Changed: true,
		Timer:   cancelTimer(AllRounds),
	}
}

// Input replaces the word being typed by the local player.
func (r *Reducer) Input(state *State, word string) (Transition, error) {
	if state == nil {
		return unchanged(state), ErrNoMatch
	}
	if state.Terminal() {
		return unchanged(state), ErrMatchOver
	}
	if !state.MyTurn {
		return unchanged(state), ErrNotMyTurn
	}

	letters := []rune(strings.ToUpper(word))
	if len(letters) > r.config.WordLength {
		return unchanged(state), errors.Wrapf(ErrInvalidInput, "word is longer than %d letters", r.config.WordLength)
	}
	for _, letter := range letters {
		if !unicode.IsLetter(letter) {
			return unchanged(state), errors.Wrapf(ErrInvalidInput, "%q is not a letter", letter)
		}
	}

	next := state.Clone()
	next.CurrentGuess = append(next.CurrentGuess[:0], letters...)

	return Transition{
		State:   next,
		Changed: true,
		Timer:   keepTimer(),
	}, nil
}

// row maps a round number to its index in the guesses grid.
func (r *Reducer) row(round int) (int, error) {
	row := round - r.config.FirstRound
	if row < 0 || row >= r.config.MaxRounds {
		return 0, errors.Wrapf(ErrOutOfRangeEvent, "round %d", round)
	}
	return row, nil
}

func (r *Reducer) checkPlayer(state *State, player *protocol.Player) error {
	if player == nil {
		return nil
	}
	if state.Player1 == nil && state.Player2 == nil {
		return nil
	}
	if !state.HasPlayer(player) {
		return errors.Wrapf(ErrOutOfRangeEvent, "unknown player %s", player.ID)
	}
	return nil
}

func (r *Reducer) drop(state *State, logger *zap.Logger, err error) Transition {
	logger.Warn("event dropped", zap.Error(err))
	return Transition{
		State:   state,
		Timer:   keepTimer(),
		Dropped: err,
	}
}

func unchanged(state *State) Transition {
	return Transition{
		State: state,
		Timer: keepTimer(),
	}
}
