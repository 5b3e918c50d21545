package game

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/six78/wordle-duel-cli/internal/config"
	"github.com/six78/wordle-duel-cli/internal/testcommon"
	"github.com/six78/wordle-duel-cli/internal/testcommon/matchers"
	"github.com/six78/wordle-duel-cli/internal/transport"
	mocktransport "github.com/six78/wordle-duel-cli/internal/transport/mock"
	"github.com/six78/wordle-duel-cli/pkg/match"
	"github.com/six78/wordle-duel-cli/pkg/protocol"
	"github.com/six78/wordle-duel-cli/pkg/storage"
	mockstorage "github.com/six78/wordle-duel-cli/pkg/storage/mock"
)

const wordLength = match.DefaultWordLength

func TestGame(t *testing.T) {
	suite.Run(t, new(Suite))
}

type Suite struct {
	testcommon.Suite

	ctx       context.Context
	cancel    context.CancelFunc
	transport *mocktransport.MockService
	storage   *mockstorage.MockService
	clock     clockwork.FakeClock
	protocol  *protocol.Protocol
	messages  chan []byte

	nickname string
	player   *protocol.Player
	opponent *protocol.Player
}

func (s *Suite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	ctrl := gomock.NewController(s.T())
	s.transport = mocktransport.NewMockService(ctrl)
	s.storage = mockstorage.NewMockService(ctrl)
	s.clock = clockwork.NewFakeClock()
	s.protocol = protocol.NewProtocol(protocol.DefaultRegistry())
	s.messages = make(chan []byte, 42)

	s.nickname = gofakeit.Username()
	s.player = s.FakePlayer()
	s.player.Nickname = s.nickname
	s.opponent = s.FakePlayer()
}

func (s *Suite) TearDownTest() {
	s.cancel()
}

func (s *Suite) newGame(extraOptions []Option) *Game {
	options := []Option{
		WithContext(s.ctx),
		WithTransport(s.transport),
		WithClock(s.clock),
		WithLogger(s.Logger),
		WithPlayerName(s.nickname),
		WithTypingInterval(0),
	}
	options = append(options, extraOptions...)

	g := NewGame(options)
	s.Require().NotNil(g)
	s.Require().False(g.Initialized())

	s.transport.EXPECT().SubscribeToMessages().
		Return(&transport.MessagesSubscription{
			Ch:          s.messages,
			Unsubscribe: func() {},
		}, nil).
		Times(1)

	err := g.Initialize()
	s.Require().NoError(err)
	s.Require().True(g.Initialized())

	return g
}

func (s *Suite) send(payload protocol.Payload) {
	data, err := s.protocol.Marshal(payload)
	s.Require().NoError(err)
	s.messages <- data
}

func (s *Suite) startMatch(g *Game) {
	s.send(&protocol.PlayerInfoPayload{ID: s.player.ID, Nickname: s.player.Nickname})
	s.send(&protocol.MatchingPayload{})
	s.send(&protocol.GameStartPayload{
		MaxGuesses: match.DefaultMaxRounds,
		Player1:    s.player,
		Player2:    s.opponent,
	})
	s.WaitFor(func() bool {
		return g.Status() == StatusPlaying && g.CurrentState() != nil
	}, "match not started")
	s.Require().Equal(s.player, g.Player())
	s.Require().Equal(s.opponent, g.Opponent())
}

func (s *Suite) startRound(g *Game, player *protocol.Player, round int, deadline time.Duration) {
	s.send(&protocol.RoundStartPayload{
		Player:   player,
		Round:    round,
		Deadline: s.clock.Now().Add(deadline),
	})
	s.WaitFor(func() bool {
		return g.CurrentState().CurrentRound == round
	}, "round %d not started", round)
}

func (s *Suite) finishMatch(g *Game, winner *protocol.Player) {
	s.send(&protocol.GameOverPayload{Winner: winner, Answer: strings.ToUpper(s.FakeWord(wordLength))})
	s.WaitFor(func() bool {
		return g.Status() == StatusFinished
	}, "match not finished")
}

func (s *Suite) waitForNotification(sub UpdateSubscription, message string) Update {
	timeout := time.After(time.Second)
	for {
		select {
		case update := <-sub:
			for _, notification := range update.Notifications {
				if notification.Message == message {
					return update
				}
			}
		case <-timeout:
			s.Require().Fail("notification not received", message)
			return Update{}
		}
	}
}

func (s *Suite) TestPlayerNameFromStorage() {
	name := gofakeit.Username()
	s.storage.EXPECT().Initialize().Return(nil).Times(1)
	s.storage.EXPECT().PlayerName().Return(name).Times(1)

	g := s.newGame([]Option{
		WithPlayerName(""),
		WithStorage(s.storage),
	})

	s.Require().Equal(name, g.Nickname())
}

func (s *Suite) TestGeneratedPlayerName() {
	g := s.newGame([]Option{WithPlayerName("")})
	s.Require().Regexp(`^player-\d+$`, g.Nickname())
	s.Require().Equal(config.GeneratePlayerName(s.clock.Now()), g.Nickname())
}

func (s *Suite) TestStorageInitializeFails() {
	s.storage.EXPECT().Initialize().Return(errors.New(gofakeit.Sentence(2))).Times(1)

	g := NewGame([]Option{
		WithTransport(s.transport),
		WithClock(s.clock),
		WithStorage(s.storage),
	})
	s.Require().NotNil(g)
	s.Require().Error(g.Initialize())
	s.Require().False(g.Initialized())
}

func (s *Suite) TestConnect() {
	g := s.newGame(nil)

	s.transport.EXPECT().Start(s.nickname).Return(nil).Times(1)

	err := g.Connect()
	s.Require().NoError(err)
	s.Require().Equal(StatusConnecting, g.Status())
}

func (s *Suite) TestConnectFailed() {
	g := s.newGame(nil)

	s.transport.EXPECT().Start(s.nickname).Return(errors.New("connection refused")).Times(1)

	err := g.Connect()
	s.Require().Error(err)
	s.Require().Equal(StatusIdle, g.Status())
}

func (s *Suite) TestConnectNotInitialized() {
	g := NewGame([]Option{
		WithTransport(s.transport),
		WithClock(s.clock),
	})
	s.Require().NotNil(g)
	s.Require().ErrorIs(g.Connect(), ErrNotInitialized)
}

func (s *Suite) TestMatch() {
	s.storage.EXPECT().Initialize().Return(nil).Times(1)
	g := s.newGame([]Option{WithStorage(s.storage)})

	updates := g.SubscribeToUpdates()
	s.startMatch(g)

	// My turn
	s.startRound(g, s.player, 0, time.Minute)
	s.waitForNotification(updates, "Your Turn!")

	state := g.CurrentState()
	s.Require().True(state.MyTurn)
	s.Require().Equal(time.Minute, g.TimeRemaining())

	word := strings.ToUpper(s.FakeWord(wordLength))

	typingMatcher := matchers.NewPayloadMatcher(s.T(), protocol.MessageTypeTyping, func(payload protocol.Payload) bool {
		return payload.(*protocol.TypingPayload).Word == word
	})
	s.transport.EXPECT().PublishMessage(typingMatcher).Return(nil).Times(1)

	err := g.Type(strings.ToLower(word))
	s.Require().NoError(err)
	typingMatcher.Wait()
	s.Require().Equal(word, g.CurrentState().CurrentWord())

	guessMatcher := matchers.NewGuessMatcher(s.T(), word)
	s.transport.EXPECT().PublishMessage(guessMatcher).Return(nil).Times(1)

	err = g.SubmitGuess()
	s.Require().NoError(err)
	guessMatcher.Wait()

	s.send(&protocol.FeedbackPayload{
		Player:   s.player,
		Round:    0,
		Feedback: s.FakeFeedback(word),
	})
	s.WaitFor(func() bool {
		return g.CurrentState().RowFilled(0)
	}, "feedback not applied")

	state = g.CurrentState()
	s.Require().False(state.MyTurn)
	s.Require().Empty(state.CurrentGuess)

	// Opponent's turn
	s.startRound(g, s.opponent, 1, time.Minute)
	s.Require().False(g.CurrentState().MyTurn)

	s.send(&protocol.TypingPayload{Player: s.opponent, Word: "ab"})
	s.WaitFor(func() bool {
		return g.CurrentState().OpponentGuess == "AB"
	}, "opponent typing not applied")

	results := make(chan storage.MatchResult, 1)
	s.storage.EXPECT().SaveMatchResult(gomock.Any()).
		DoAndReturn(func(result storage.MatchResult) error {
			results <- result
			return nil
		}).
		Times(1)

	s.finishMatch(g, s.player)
	s.waitForNotification(updates, "You won!")

	select {
	case result := <-results:
		s.Require().Equal(storage.OutcomeWin, result.Outcome)
		s.Require().Equal(*s.opponent, result.Opponent)
		s.Require().Equal(1, result.Rounds)
		s.Require().Equal(s.clock.Now(), result.FinishedAt)
		s.Require().Equal(g.CurrentState().GameOver.Answer, result.Answer)
	case <-time.After(time.Second):
		s.Require().Fail("match result not saved")
	}

	// A repeated game over does not save the result again
	s.send(&protocol.GameOverPayload{Winner: s.player})
	s.waitForNotification(updates, "You won!")
	s.Require().Equal(StatusFinished, g.Status())

	playAgainMatcher := matchers.NewPayloadMatcher(s.T(), protocol.MessageTypePlayAgain, func(payload protocol.Payload) bool {
		return payload.(*protocol.PlayAgainPayload).Confirm
	})
	s.transport.EXPECT().PublishMessage(playAgainMatcher).Return(nil).Times(1)

	err = g.PlayAgain(true)
	s.Require().NoError(err)
	playAgainMatcher.Wait()
	s.Require().Equal(StatusMatching, g.Status())
}

func (s *Suite) TestRoundDeadline() {
	g := s.newGame(nil)
	s.startMatch(g)

	s.startRound(g, s.player, 0, 10*time.Second)
	s.Require().True(g.CurrentState().MyTurn)

	s.clock.Advance(10 * time.Second)

	s.WaitFor(func() bool {
		state := g.CurrentState()
		return !state.MyTurn && state.Deadline == nil
	}, "deadline did not expire")
	s.Require().Zero(g.TimeRemaining())
}

func (s *Suite) TestStaleDeadlineIgnored() {
	g := s.newGame(nil)
	s.startMatch(g)

	s.startRound(g, s.player, 0, 10*time.Second)
	s.startRound(g, s.player, 1, 40*time.Second)

	s.clock.Advance(15 * time.Second)
	s.Require().Never(func() bool {
		return !g.CurrentState().MyTurn
	}, 50*time.Millisecond, 5*time.Millisecond)

	s.clock.Advance(25 * time.Second)
	s.WaitFor(func() bool {
		return !g.CurrentState().MyTurn
	}, "deadline of the current round did not expire")
}

func (s *Suite) TestDeadlineAlreadyPassed() {
	g := s.newGame(nil)
	s.startMatch(g)

	s.startRound(g, s.player, 0, -time.Second)

	state := g.CurrentState()
	s.Require().False(state.MyTurn)
	s.Require().Nil(state.Deadline)
}

func (s *Suite) TestFeedbackCancelsDeadline() {
	g := s.newGame(nil)
	s.startMatch(g)

	s.startRound(g, s.opponent, 0, 10*time.Second)
	s.send(&protocol.FeedbackPayload{
		Player:   s.opponent,
		Round:    0,
		Feedback: s.FakeFeedback(strings.ToUpper(s.FakeWord(wordLength))),
	})
	s.WaitFor(func() bool {
		return g.CurrentState().RowFilled(0)
	})

	deadline := g.CurrentState().Deadline
	s.Require().NotNil(deadline)

	s.clock.Advance(time.Minute)
	s.Require().Never(func() bool {
		return g.CurrentState().Deadline == nil
	}, 50*time.Millisecond, 5*time.Millisecond)
}

func (s *Suite) TestTypingRateLimited() {
	g := s.newGame([]Option{WithTypingInterval(time.Second)})
	s.startMatch(g)
	s.startRound(g, s.player, 0, time.Minute)

	word := strings.ToUpper(s.FakeWord(wordLength))

	typingMatcher := func(expected string) *matchers.PayloadMatcher {
		return matchers.NewPayloadMatcher(s.T(), protocol.MessageTypeTyping, func(payload protocol.Payload) bool {
			return payload.(*protocol.TypingPayload).Word == expected
		})
	}

	first := typingMatcher(word[:1])
	s.transport.EXPECT().PublishMessage(first).Return(nil).Times(1)
	s.Require().NoError(g.Type(word[:1]))
	first.Wait()

	last := typingMatcher(word[:3])
	s.transport.EXPECT().PublishMessage(last).Return(nil).Times(1)
	s.Require().NoError(g.Type(word[:2]))
	s.Require().NoError(g.Type(word[:3]))

	s.clock.Advance(time.Second)
	last.Wait()
}

func (s *Suite) TestTypeErrors() {
	g := s.newGame(nil)
	s.Require().ErrorIs(g.Type("A"), match.ErrNoMatch)

	s.startMatch(g)
	s.startRound(g, s.opponent, 0, time.Minute)
	s.Require().ErrorIs(g.Type("A"), match.ErrNotMyTurn)

	s.startRound(g, s.player, 1, time.Minute)
	s.Require().ErrorIs(g.Type("A1"), match.ErrInvalidInput)
	s.Require().ErrorIs(g.Type(strings.Repeat("A", wordLength+1)), match.ErrInvalidInput)
	s.Require().Empty(g.CurrentState().CurrentGuess)
}

func (s *Suite) TestSubmitGuessErrors() {
	g := s.newGame(nil)
	s.Require().ErrorIs(g.SubmitGuess(), match.ErrNoMatch)

	s.startMatch(g)
	s.startRound(g, s.opponent, 0, time.Minute)
	s.Require().ErrorIs(g.SubmitGuess(), match.ErrNotMyTurn)

	s.startRound(g, s.player, 1, time.Minute)

	s.transport.EXPECT().PublishMessage(matchers.NewTypingMatcher(s.T())).Return(nil).AnyTimes()
	s.Require().NoError(g.Type("AB"))
	s.Require().ErrorIs(g.SubmitGuess(), ErrIncompleteWord)

	s.finishMatch(g, s.opponent)
	s.Require().ErrorIs(g.SubmitGuess(), match.ErrMatchOver)
}

func (s *Suite) TestInvalidWord() {
	g := s.newGame(nil)
	updates := g.SubscribeToUpdates()
	s.startMatch(g)
	s.startRound(g, s.player, 0, time.Minute)

	word := strings.ToUpper(s.FakeWord(wordLength))
	s.transport.EXPECT().PublishMessage(matchers.NewTypingMatcher(s.T())).Return(nil).AnyTimes()
	s.Require().NoError(g.Type(word))

	s.send(&protocol.InvalidWordPayload{Player: s.player, Round: 0, Word: word})
	s.waitForNotification(updates, word+" is not a valid word")

	state := g.CurrentState()
	s.Require().Empty(state.CurrentGuess)
	s.Require().True(state.MyTurn)
}

func (s *Suite) TestConnectionClosedDuringMatch() {
	g := s.newGame(nil)
	s.startMatch(g)
	s.startRound(g, s.player, 0, time.Minute)

	close(s.messages)

	s.WaitFor(func() bool {
		return !g.CurrentState().Interactive
	}, "match is still interactive")
	s.Require().False(g.CurrentState().MyTurn)
	s.Require().Equal(StatusPlaying, g.Status())
}

func (s *Suite) TestConnectionClosedWhileMatching() {
	g := s.newGame(nil)
	s.send(&protocol.MatchingPayload{})
	s.WaitFor(func() bool {
		return g.Status() == StatusMatching
	})

	close(s.messages)

	s.WaitFor(func() bool {
		return g.Status() == StatusIdle
	}, "status is not idle")
	s.Require().Nil(g.CurrentState())
}

func (s *Suite) TestPlayAgain() {
	g := s.newGame(nil)
	s.Require().ErrorIs(g.PlayAgain(true), ErrNotFinished)

	s.startMatch(g)
	s.Require().ErrorIs(g.PlayAgain(true), ErrNotFinished)

	s.finishMatch(g, nil)

	declineMatcher := matchers.NewPayloadMatcher(s.T(), protocol.MessageTypePlayAgain, func(payload protocol.Payload) bool {
		return !payload.(*protocol.PlayAgainPayload).Confirm
	})
	s.transport.EXPECT().PublishMessage(declineMatcher).Return(nil).Times(1)

	s.Require().NoError(g.PlayAgain(false))
	declineMatcher.Wait()
	s.Require().Equal(StatusIdle, g.Status())
}

func (s *Suite) TestPlayAgainPublishFails() {
	g := s.newGame(nil)
	s.startMatch(g)
	s.finishMatch(g, s.opponent)

	s.transport.EXPECT().PublishMessage(gomock.Any()).Return(transport.ErrNotConnected).Times(1)

	err := g.PlayAgain(true)
	s.Require().ErrorIs(err, transport.ErrNotConnected)
	s.Require().Equal(StatusFinished, g.Status())
}

func (s *Suite) TestPlayAgainTimeout() {
	g := s.newGame(nil)
	s.startMatch(g)
	s.finishMatch(g, s.opponent)

	s.send(&protocol.PlayAgainTimeoutPayload{})
	s.WaitFor(func() bool {
		return g.Status() == StatusIdle
	}, "status is not idle")
}

func (s *Suite) TestMalformedFrameDropped() {
	g := s.newGame(nil)

	s.messages <- []byte(gofakeit.Sentence(3))
	s.messages <- []byte(`{"type":"unknown"}`)
	s.send(&protocol.MatchingPayload{})

	s.WaitFor(func() bool {
		return g.Status() == StatusMatching
	}, "valid message after malformed ones was not handled")
}

func (s *Suite) TestMessageWithoutMatchDropped() {
	g := s.newGame(nil)

	s.send(&protocol.RoundStartPayload{Player: s.player, Round: 0})
	s.send(&protocol.MatchingPayload{})

	s.WaitFor(func() bool {
		return g.Status() == StatusMatching
	})
	s.Require().Nil(g.CurrentState())
}

func (s *Suite) TestRename() {
	s.storage.EXPECT().Initialize().Return(nil).Times(1)
	g := s.newGame([]Option{WithStorage(s.storage)})

	name := gofakeit.Username()
	s.storage.EXPECT().SetPlayerName(name).Return(nil).Times(1)

	s.Require().NoError(g.Rename(" " + name + " "))
	s.Require().Equal(name, g.Nickname())

	s.Require().ErrorIs(g.Rename("  "), ErrEmptyName)
	s.Require().Equal(name, g.Nickname())
}

func (s *Suite) TestStop() {
	g := s.newGame(nil)
	updates := g.SubscribeToUpdates()

	g.Stop()

	select {
	case _, more := <-updates:
		s.Require().False(more)
	case <-time.After(time.Second):
		s.Require().Fail("updates subscription was not closed")
	}
}
