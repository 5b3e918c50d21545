package protocol

import (
	"time"
)

const (
	MessageTypePlayerInfo       MessageType = "player_info"
	MessageTypeMatching         MessageType = "matching"
	MessageTypeGameStart        MessageType = "game_start"
	MessageTypeGuess            MessageType = "guess"
	MessageTypeRoundStart       MessageType = "round_start"
	MessageTypeInvalidWord      MessageType = "invalid_word"
	MessageTypeFeedback         MessageType = "feedback"
	MessageTypeGuessTimeout     MessageType = "guess_timeout"
	MessageTypeGameOver         MessageType = "game_over"
	MessageTypeTyping           MessageType = "typing"
	MessageTypePlayAgain        MessageType = "play_again"
	MessageTypePlayAgainTimeout MessageType = "play_again_timeout"
)

// DefaultRegistry returns a new registry with all message types known to the
// match server. Factories return pointers, so decoded payloads are pointers too.
func DefaultRegistry() Registry {
	return Registry{
		MessageTypePlayerInfo:       func() Payload { return &PlayerInfoPayload{} },
		MessageTypeMatching:         func() Payload { return &MatchingPayload{} },
		MessageTypeGameStart:        func() Payload { return &GameStartPayload{} },
		MessageTypeGuess:            func() Payload { return &GuessPayload{} },
		MessageTypeRoundStart:       func() Payload { return &RoundStartPayload{} },
		MessageTypeInvalidWord:      func() Payload { return &InvalidWordPayload{} },
		MessageTypeFeedback:         func() Payload { return &FeedbackPayload{} },
		MessageTypeGuessTimeout:     func() Payload { return &GuessTimeoutPayload{} },
		MessageTypeGameOver:         func() Payload { return &GameOverPayload{} },
		MessageTypeTyping:           func() Payload { return &TypingPayload{} },
		MessageTypePlayAgain:        func() Payload { return &PlayAgainPayload{} },
		MessageTypePlayAgainTimeout: func() Payload { return &PlayAgainTimeoutPayload{} },
	}
}

type PlayerInfoPayload struct {
	ID       PlayerID `json:"id"`
	Nickname string   `json:"nickname"`
}

func (p PlayerInfoPayload) MessageType() MessageType {
	return MessageTypePlayerInfo
}

func (p PlayerInfoPayload) Player() Player {
	return Player{
		ID:       p.ID,
		Nickname: p.Nickname,
	}
}

type MatchingPayload struct{}

func (p MatchingPayload) MessageType() MessageType {
	return MessageTypeMatching
}

type GameStartPayload struct {
	MaxGuesses int     `json:"max_guesses"`
	Player1    *Player `json:"player1"`
	Player2    *Player `json:"player2"`
}

func (p GameStartPayload) MessageType() MessageType {
	return MessageTypeGameStart
}

type GuessPayload struct {
	Word string `json:"word"`
}

func (p GuessPayload) MessageType() MessageType {
	return MessageTypeGuess
}

type RoundStartPayload struct {
	Player   *Player   `json:"player"`
	Round    int       `json:"round"`
	Deadline time.Time `json:"deadline"`
}

func (p RoundStartPayload) MessageType() MessageType {
	return MessageTypeRoundStart
}

type InvalidWordPayload struct {
	Player *Player `json:"player"`
	Round  int     `json:"round"`
	Word   string  `json:"word"`
}

func (p InvalidWordPayload) MessageType() MessageType {
	return MessageTypeInvalidWord
}

type FeedbackPayload struct {
	Player   *Player          `json:"player"`
	Round    int              `json:"round"`
	Feedback []LetterFeedback `json:"feedback"`
}

func (p FeedbackPayload) MessageType() MessageType {
	return MessageTypeFeedback
}

// Word returns the guessed word restored from the feedback positions.
func (p FeedbackPayload) Word() string {
	letters := make([]rune, len(p.Feedback))
	for _, f := range p.Feedback {
		if f.Position < 0 || f.Position >= len(letters) {
			continue
		}
		letters[f.Position] = rune(f.Letter)
	}
	return string(letters)
}

type GuessTimeoutPayload struct {
	Player *Player `json:"player"`
	Round  int     `json:"round"`
}

func (p GuessTimeoutPayload) MessageType() MessageType {
	return MessageTypeGuessTimeout
}

// GameOverPayload ends the match. A nil Winner means a draw.
type GameOverPayload struct {
	Winner *Player `json:"winner"`
	Answer string  `json:"answer"`
}

func (p GameOverPayload) MessageType() MessageType {
	return MessageTypeGameOver
}

func (p GameOverPayload) IsDraw() bool {
	return p.Winner == nil
}

type TypingPayload struct {
	Player *Player `json:"player,omitempty"`
	Word   string  `json:"word"`
}

func (p TypingPayload) MessageType() MessageType {
	return MessageTypeTyping
}

type PlayAgainPayload struct {
	Confirm bool `json:"confirm"`
}

func (p PlayAgainPayload) MessageType() MessageType {
	return MessageTypePlayAgain
}

// PlayAgainTimeoutPayload is sent by the server when the player did not
// answer the play again question in time.
type PlayAgainTimeoutPayload struct{}

func (p PlayAgainTimeoutPayload) MessageType() MessageType {
	return MessageTypePlayAgainTimeout
}
