package testcommon

import (
	"reflect"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/six78/wordle-duel-cli/internal/config"
	"github.com/six78/wordle-duel-cli/pkg/protocol"
)

type Suite struct {
	suite.Suite
	Logger *zap.Logger
}

// SetupSuite installs a development logger, named after the suite, as the
// global logger too.
func (s *Suite) SetupSuite() {
	logger, err := zap.NewDevelopment(zap.AddStacktrace(zapcore.ErrorLevel))
	s.Require().NoError(err)
	s.Logger = logger.Named(s.T().Name())
	config.Logger = s.Logger
}

func (s *Suite) TearDownSuite() {
	_ = config.Logger.Sync()
}

func (s *Suite) SplitBatch(batch tea.Cmd) []tea.Cmd {
	s.Require().Equal(reflect.Func, reflect.TypeOf(batch).Kind())

	result := batch()
	s.Require().NotNil(result)

	batchMessage := result.(tea.BatchMsg)
	s.Require().NotNil(batchMessage)

	return batchMessage
}

func (s *Suite) FakePlayer() *protocol.Player {
	return &protocol.Player{
		ID:       protocol.PlayerID(gofakeit.UUID()),
		Nickname: gofakeit.Username(),
	}
}

func (s *Suite) FakeWord(length int) string {
	return gofakeit.LetterN(uint(length))
}

// FakeFeedback builds the feedback of a word, letters listed in position order.
func (s *Suite) FakeFeedback(word string) []protocol.LetterFeedback {
	feedback := make([]protocol.LetterFeedback, 0, len(word))
	for i, letter := range []rune(word) {
		feedback = append(feedback, protocol.LetterFeedback{
			Letter:    protocol.Letter(letter),
			Position:  i,
			MatchType: protocol.MatchType(gofakeit.IntRange(0, 2)),
		})
	}
	return feedback
}

// WaitFor waits until the condition holds, failing the test after one second.
func (s *Suite) WaitFor(condition func() bool, msgAndArgs ...interface{}) {
	s.Require().Eventually(condition, time.Second, 5*time.Millisecond, msgAndArgs...)
}
