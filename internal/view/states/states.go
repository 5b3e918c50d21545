package states

type AppState int

const (
	Initializing AppState = iota
	InputPlayerName
	Playing
)
