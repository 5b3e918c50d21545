package protocol

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fakePlayer() *Player {
	return &Player{
		ID:       PlayerID(gofakeit.UUID()),
		Nickname: gofakeit.Username(),
	}
}

func fakeFeedback() []LetterFeedback {
	word := gofakeit.LetterN(5)
	feedback := make([]LetterFeedback, len(word))
	for i, letter := range word {
		feedback[i] = LetterFeedback{
			Letter:    Letter(letter),
			Position:  i,
			MatchType: MatchType(gofakeit.IntRange(0, 2)),
		}
	}
	return feedback
}

func TestRoundTrip(t *testing.T) {
	deadline := time.Unix(gofakeit.Int64()%4_000_000_000, 0).UTC()

	payloads := []Payload{
		&PlayerInfoPayload{ID: PlayerID(gofakeit.UUID()), Nickname: gofakeit.Username()},
		&MatchingPayload{},
		&GameStartPayload{MaxGuesses: gofakeit.IntRange(1, 12), Player1: fakePlayer(), Player2: fakePlayer()},
		&GuessPayload{Word: gofakeit.LetterN(5)},
		&RoundStartPayload{Player: fakePlayer(), Round: gofakeit.IntRange(0, 11), Deadline: deadline},
		&InvalidWordPayload{Player: fakePlayer(), Round: gofakeit.IntRange(0, 11), Word: gofakeit.LetterN(5)},
		&FeedbackPayload{Player: fakePlayer(), Round: gofakeit.IntRange(0, 11), Feedback: fakeFeedback()},
		&GuessTimeoutPayload{Player: fakePlayer(), Round: gofakeit.IntRange(0, 11)},
		&GameOverPayload{Winner: fakePlayer(), Answer: gofakeit.LetterN(5)},
		&GameOverPayload{Winner: nil, Answer: gofakeit.LetterN(5)},
		&TypingPayload{Player: fakePlayer(), Word: gofakeit.LetterN(3)},
		&PlayAgainPayload{Confirm: gofakeit.Bool()},
		&PlayAgainTimeoutPayload{},
	}

	p := NewProtocol(DefaultRegistry())

	for _, sent := range payloads {
		t.Run(string(sent.MessageType()), func(t *testing.T) {
			envelope, err := p.Encode(sent)
			require.NoError(t, err)
			require.Equal(t, sent.MessageType(), envelope.Type)

			frame, err := json.Marshal(envelope)
			require.NoError(t, err)

			received, err := p.Decode(frame)
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(sent, received))
		})
	}
}

func TestEncodeDerivesType(t *testing.T) {
	p := NewProtocol(DefaultRegistry())

	frame, err := p.Marshal(&GuessPayload{Word: "CRANE"})
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"guess","payload":{"word":"CRANE"}}`, string(frame))
}

func TestEncodeNil(t *testing.T) {
	p := NewProtocol(DefaultRegistry())
	_, err := p.Encode(nil)
	require.ErrorIs(t, err, ErrNilPayload)
}

func TestDecodeMalformed(t *testing.T) {
	p := NewProtocol(DefaultRegistry())

	testCases := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"not json", `hello`},
		{"array", `[1, 2]`},
		{"string", `"round_start"`},
		{"null", `null`},
		{"numeric type", `{"type": 5}`},
		{"empty type", `{"type": ""}`},
		{"payload of wrong shape", `{"type": "guess", "payload": {"word": 42}}`},
		{"payload not an object", `{"type": "round_start", "payload": "soon"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := p.Decode([]byte(tc.raw))
			require.Nil(t, payload)
			require.True(t, errors.Is(err, ErrMalformedMessage), "unexpected error: %v", err)
		})
	}
}

func TestDecodeUnknownType(t *testing.T) {
	p := NewProtocol(DefaultRegistry())

	payload, err := p.Decode([]byte(`{"type":"bogus"}`))
	require.Nil(t, payload)
	require.True(t, errors.Is(err, ErrUnknownMessageType))
	require.False(t, errors.Is(err, ErrMalformedMessage))

	payload, err = p.DecodeEnvelope(&Envelope{Type: "bogus", Payload: []byte(`{"word":"CRANE"}`)})
	require.Nil(t, payload)
	require.ErrorIs(t, err, ErrUnknownMessageType)
}

func TestDecodeShallowOverlay(t *testing.T) {
	p := NewProtocol(DefaultRegistry())

	raw := `{"type":"game_over","payload":{"answer":"APPLE","unexpected":[1,2,3]}}`
	payload, err := p.Decode([]byte(raw))
	require.NoError(t, err)

	gameOver, ok := payload.(*GameOverPayload)
	require.True(t, ok)
	require.Equal(t, "APPLE", gameOver.Answer)
	require.Nil(t, gameOver.Winner)
	require.True(t, gameOver.IsDraw())
}

func TestDecodeWithoutPayload(t *testing.T) {
	p := NewProtocol(DefaultRegistry())

	payload, err := p.Decode([]byte(`{"type":"matching"}`))
	require.NoError(t, err)
	require.IsType(t, &MatchingPayload{}, payload)
}

func TestCustomRegistry(t *testing.T) {
	registry := Registry{}
	require.False(t, registry.Has(MessageTypeGuess))

	p := NewProtocol(registry)
	_, err := p.Decode([]byte(`{"type":"guess","payload":{"word":"CRANE"}}`))
	require.ErrorIs(t, err, ErrUnknownMessageType)

	registry.Register(MessageTypeGuess, func() Payload { return &GuessPayload{} })
	require.True(t, registry.Has(MessageTypeGuess))

	payload, err := p.Decode([]byte(`{"type":"guess","payload":{"word":"CRANE"}}`))
	require.NoError(t, err)
	require.Equal(t, &GuessPayload{Word: "CRANE"}, payload)
}

func TestDefaultRegistryIsACopy(t *testing.T) {
	first := DefaultRegistry()
	delete(first, MessageTypeGuess)

	second := DefaultRegistry()
	require.True(t, second.Has(MessageTypeGuess))
}

func TestLetterFromCodePoint(t *testing.T) {
	p := NewProtocol(DefaultRegistry())

	raw := `{"type":"feedback","payload":{"round":1,"feedback":[{"Letter":65,"Position":0,"MatchType":2}]}}`
	payload, err := p.Decode([]byte(raw))
	require.NoError(t, err)

	feedback := payload.(*FeedbackPayload)
	require.Len(t, feedback.Feedback, 1)
	require.Equal(t, Letter('A'), feedback.Feedback[0].Letter)
	require.Equal(t, Hit, feedback.Feedback[0].MatchType)
}

func TestLetterInvalid(t *testing.T) {
	var letter Letter
	err := json.Unmarshal([]byte(`"AB"`), &letter)
	require.Error(t, err)

	err = json.Unmarshal([]byte(`true`), &letter)
	require.Error(t, err)
}

func TestMatchTypeOrdinals(t *testing.T) {
	require.Equal(t, 0, int(Miss))
	require.Equal(t, 1, int(Present))
	require.Equal(t, 2, int(Hit))
	require.Equal(t, "present", Present.String())
	require.False(t, MatchType(3).Valid())
}

func TestFeedbackWord(t *testing.T) {
	payload := FeedbackPayload{
		Feedback: []LetterFeedback{
			{Letter: 'E', Position: 4},
			{Letter: 'C', Position: 0},
			{Letter: 'A', Position: 2},
			{Letter: 'R', Position: 1},
			{Letter: 'N', Position: 3},
		},
	}
	require.Equal(t, "CRANE", payload.Word())
}

func TestDecodeStream(t *testing.T) {
	p := NewProtocol(DefaultRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := make(chan []byte, 3)
	output := p.DecodeStream(ctx, input, zap.NewNop())

	input <- []byte(`{"type":"bogus"}`)
	input <- []byte(`not a frame`)
	input <- []byte(`{"type":"matching"}`)
	close(input)

	received := make([]Payload, 0, 1)
	for payload := range output {
		received = append(received, payload)
	}

	require.Len(t, received, 1)
	require.IsType(t, &MatchingPayload{}, received[0])
}

func TestPlayerIs(t *testing.T) {
	player := fakePlayer()
	same := &Player{ID: player.ID, Nickname: gofakeit.Username()}

	require.True(t, player.Is(same))
	require.False(t, player.Is(fakePlayer()))
	require.False(t, player.Is(nil))

	var nobody *Player
	require.False(t, nobody.Is(player))
}
