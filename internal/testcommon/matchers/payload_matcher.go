package matchers

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/six78/wordle-duel-cli/pkg/protocol"
)

const waitTimeout = time.Second

type Condition func(payload protocol.Payload) bool

// PayloadMatcher matches outgoing frames that decode to the given message type.
type PayloadMatcher struct {
	t           *testing.T
	matched     chan protocol.Payload
	protocol    *protocol.Protocol
	messageType protocol.MessageType
	condition   Condition
}

func NewPayloadMatcher(t *testing.T, messageType protocol.MessageType, condition Condition) *PayloadMatcher {
	return &PayloadMatcher{
		t:           t,
		matched:     make(chan protocol.Payload, 42),
		protocol:    protocol.NewProtocol(protocol.DefaultRegistry()),
		messageType: messageType,
		condition:   condition,
	}
}

func (m *PayloadMatcher) Matches(x interface{}) bool {
	frame, ok := x.([]byte)
	if !ok || frame == nil {
		return false
	}

	payload, err := m.protocol.Decode(frame)
	if err != nil {
		return false
	}

	if payload.MessageType() != m.messageType {
		return false
	}

	if m.condition != nil && !m.condition(payload) {
		return false
	}

	m.matched <- payload
	return true
}

func (m *PayloadMatcher) String() string {
	return fmt.Sprintf("is %s message", m.messageType)
}

// Wait returns the next matched payload, failing the test after a second.
func (m *PayloadMatcher) Wait() protocol.Payload {
	select {
	case payload := <-m.matched:
		return payload
	case <-time.After(waitTimeout):
		require.Fail(m.t, "timeout waiting for matched call", m.String())
	}
	return nil
}

func NewGuessMatcher(t *testing.T, word string) *PayloadMatcher {
	return NewPayloadMatcher(t, protocol.MessageTypeGuess, func(payload protocol.Payload) bool {
		return payload.(*protocol.GuessPayload).Word == word
	})
}

func NewTypingMatcher(t *testing.T) *PayloadMatcher {
	return NewPayloadMatcher(t, protocol.MessageTypeTyping, nil)
}
