package match

import "go.uber.org/zap"

const (
	DefaultMaxRounds  = 12
	DefaultWordLength = 5
)

type configuration struct {
	MaxRounds  int
	WordLength int
	FirstRound int
}

var defaultConfig = configuration{
	MaxRounds:  DefaultMaxRounds,
	WordLength: DefaultWordLength,
	FirstRound: 0,
}

type Option func(*Reducer)

func WithLogger(l *zap.Logger) Option {
	return func(r *Reducer) {
		r.logger = l
	}
}

func WithMaxRounds(n int) Option {
	return func(r *Reducer) {
		if n > 0 {
			r.config.MaxRounds = n
		}
	}
}

func WithWordLength(n int) Option {
	return func(r *Reducer) {
		if n > 0 {
			r.config.WordLength = n
		}
	}
}

// WithFirstRound sets the number the server gives to the first round,
// which is stored in the first row of the grid.
func WithFirstRound(n int) Option {
	return func(r *Reducer) {
		r.config.FirstRound = n
	}
}
