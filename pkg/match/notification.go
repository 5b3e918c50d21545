package match

import (
	"fmt"
	"strings"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "unknown"
}

// Notification is a message for the player. The match only produces them,
// presenting is up to the caller.
type Notification struct {
	Level   Level
	Message string
}

func info(format string, args ...interface{}) Notification {
	return Notification{Level: LevelInfo, Message: fmt.Sprintf(format, args...)}
}

func roundNotification(round int) Notification {
	return info("Round %d", round)
}

func yourTurnNotification() Notification {
	return info("Your Turn!")
}

func invalidWordNotification(word string) Notification {
	return Notification{
		Level:   LevelError,
		Message: fmt.Sprintf("%s is not a valid word", strings.ToUpper(word)),
	}
}

func opponentInvalidWordNotification(word string) Notification {
	return info("Opponent guessed an invalid word: %s", strings.ToUpper(word))
}

func timeoutNotification() Notification {
	return Notification{Level: LevelError, Message: "You ran out of time!"}
}

func opponentTimeoutNotification() Notification {
	return info("Opponent ran out of time")
}

func winNotification() Notification {
	return Notification{Level: LevelSuccess, Message: "You won!"}
}

func drawNotification() Notification {
	return info("The game ended in a draw")
}

func lossNotification(answer string) Notification {
	message := "Game Over"
	if answer != "" {
		message += fmt.Sprintf(": the word was %s", strings.ToUpper(answer))
	}
	return Notification{Level: LevelWarning, Message: message}
}
