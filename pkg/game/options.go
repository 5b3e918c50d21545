package game

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/six78/wordle-duel-cli/internal/transport"
	"github.com/six78/wordle-duel-cli/pkg/match"
	"github.com/six78/wordle-duel-cli/pkg/protocol"
	"github.com/six78/wordle-duel-cli/pkg/storage"
)

type Option func(*Game)

func WithContext(ctx context.Context) Option {
	return func(g *Game) {
		g.ctx = ctx
	}
}

func WithTransport(t transport.Service) Option {
	return func(g *Game) {
		g.transport = t
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(g *Game) {
		g.clock = c
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

func WithStorage(s storage.Service) Option {
	return func(g *Game) {
		g.storage = s
	}
}

func WithPlayerName(name string) Option {
	return func(g *Game) {
		g.config.PlayerName = name
	}
}

func WithProtocol(p *protocol.Protocol) Option {
	return func(g *Game) {
		g.protocol = p
	}
}

func WithReducerOptions(opts ...match.Option) Option {
	return func(g *Game) {
		g.reducerOptions = append(g.reducerOptions, opts...)
	}
}

// WithTypingInterval limits how often typing messages are sent. Zero disables the limit.
func WithTypingInterval(d time.Duration) Option {
	return func(g *Game) {
		g.config.TypingInterval = d
	}
}
