package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/six78/wordle-duel-cli/internal/config"
	"github.com/six78/wordle-duel-cli/internal/transport"
	"github.com/six78/wordle-duel-cli/internal/version"
	"github.com/six78/wordle-duel-cli/internal/view"
	"github.com/six78/wordle-duel-cli/internal/view/components/historyview"
	"github.com/six78/wordle-duel-cli/pkg/game"
	"github.com/six78/wordle-duel-cli/pkg/match"
	"github.com/six78/wordle-duel-cli/pkg/storage"
)

func main() {
	config.ParseArguments()
	config.SetupLogger()

	config.Logger.Info("starting", zap.String("version", version.Version()))

	if config.History() {
		os.Exit(printHistory())
	}

	ctx, quit := context.WithCancel(context.Background())
	defer quit()

	node := transport.NewNode(ctx, config.Logger, config.Server())
	defer node.Stop()

	options := []game.Option{
		game.WithContext(ctx),
		game.WithTransport(node),
		game.WithClock(clockwork.NewRealClock()),
		game.WithLogger(config.Logger),
		game.WithPlayerName(config.PlayerName()),
		game.WithTypingInterval(config.TypingInterval),
		game.WithReducerOptions(match.WithFirstRound(config.FirstRound())),
	}
	if s := createStorage(); s != nil {
		options = append(options, game.WithStorage(s))
	}

	g := game.NewGame(options)
	if g == nil {
		config.Logger.Error("failed to create game")
		os.Exit(1)
	}
	defer g.Stop()

	code := view.Run(g, node)
	os.Exit(code)
}

func createStorage() storage.Service {
	if config.Anonymous() {
		return nil
	}
	return storage.NewLocalStorage("")
}

func printHistory() int {
	s := storage.NewLocalStorage("")
	if err := s.Initialize(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	results, err := s.MatchHistory()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Println(historyview.Render(results))
	return 0
}
