package commands

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	// Match
	SubmitGuess  key.Binding
	DeleteLetter key.Binding
	// Finished match
	PlayAgain key.Binding
	Decline   key.Binding
	// Common
	Quit key.Binding
}

var DefaultKeyMap = KeyMap{
	// Match
	SubmitGuess: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Submit guess"),
	),
	DeleteLetter: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("Backspace", "Delete letter"),
	),
	// Finished match
	PlayAgain: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("Y", "Play again"),
	),
	Decline: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("N", "Leave"),
	),
	// Common
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+C", "Quit"),
	),
}
