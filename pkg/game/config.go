package game

import "time"

type configuration struct {
	PlayerName     string
	TypingInterval time.Duration
}

var defaultConfig = configuration{
	PlayerName:     "",
	TypingInterval: 200 * time.Millisecond,
}
