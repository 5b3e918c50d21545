package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/shibukawa/configdir"
	"go.uber.org/zap"
)

const logsDirectory = "logs"

const VendorName = "six78"
const ApplicationName = "wordle-duel"

const DefaultServer = "localhost:8080"
const TypingInterval = 200 * time.Millisecond

const UserColor = lipgloss.Color("#7D56F4")
const ForegroundShadeColor = lipgloss.Color("#555555")

const (
	envServer     = "WORDLE_SERVER"
	envPlayerName = "WORDLE_NAME"
	envFirstRound = "WORDLE_FIRST_ROUND"
	envDebug      = "WORDLE_DEBUG"
)

var server string
var playerName string
var firstRound int
var debug bool
var anonymous bool
var history bool

var Logger = zap.NewNop()
var LogFilePath string

func SetupLogger() {
	var c zap.Config
	if debug {
		c = zap.NewDevelopmentConfig()
	} else {
		c = zap.NewProductionConfig()
	}

	LogFilePath = createLogFile()
	c.OutputPaths = []string{LogFilePath}
	c.Development = false
	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	Logger = logger
}

func createLogFile() string {
	name := fmt.Sprintf("wordle-duel-%s.log", time.Now().UTC().Format(time.RFC3339))
	name = strings.Replace(name, ":", "-", -1)

	configDirs := configdir.New(VendorName, ApplicationName)
	folders := configDirs.QueryFolders(configdir.Global)
	path := filepath.Join(folders[0].Path, logsDirectory, name)

	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		panic(err)
	}

	if _, err := os.Create(path); err != nil {
		panic(err)
	}

	return path
}

// ParseArguments reads the command line. Values from the environment, or
// from a .env file in the working directory, become the flag defaults.
func ParseArguments() {
	ParseArgumentsFrom(flag.CommandLine, os.Args[1:])
}

func ParseArgumentsFrom(flags *flag.FlagSet, arguments []string) {
	_ = godotenv.Load()

	flags.StringVar(&server, "server", envString(envServer, DefaultServer), "Match server address")
	flags.StringVar(&playerName, "name", envString(envPlayerName, ""), "Player name")
	flags.IntVar(&firstRound, "first-round", envInt(envFirstRound, 1), "Number of the first round sent by the server")
	flags.BoolVar(&debug, "debug", envBool(envDebug, false), "Show debug info")
	flags.BoolVar(&anonymous, "anonymous", false, "Anonymous mode")
	flags.BoolVar(&history, "history", false, "Print the match history and exit")
	_ = flags.Parse(arguments)
}

func envString(key string, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(envString(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(envString(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

// GeneratePlayerName returns the fallback name for a player that has none.
func GeneratePlayerName(now time.Time) string {
	return fmt.Sprintf("player-%d", now.Unix())
}

func Server() string {
	return server
}

func PlayerName() string {
	return playerName
}

func FirstRound() int {
	return firstRound
}

func Debug() bool {
	return debug
}

func Anonymous() bool {
	return anonymous
}

func History() bool {
	return history
}
