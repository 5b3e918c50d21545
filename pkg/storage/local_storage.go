package storage

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	"go.uber.org/zap"

	"github.com/six78/wordle-duel-cli/internal/config"
)

const (
	playerStorageFileName  = "player.json"
	historyStorageFileName = "history.json"

	// Oldest results are dropped beyond this.
	historyLimit = 100
)

type LocalStorage struct {
	player playerStorage

	localPath string
	folder    *configdir.Config
	mutex     sync.RWMutex
}

type playerStorage struct {
	Name string `json:"name"`
}

// NewLocalStorage creates a storage in localPath, or in the global
// configuration folder of the application when localPath is empty.
func NewLocalStorage(localPath string) *LocalStorage {
	return &LocalStorage{
		localPath: localPath,
	}
}

func (s *LocalStorage) Initialize() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.folder = s.queryFolder()

	err := s.readPlayer()
	config.Logger.Info("storage initialized",
		zap.Any("player", s.player),
		zap.String("path", s.folder.Path),
		zap.Error(err),
	)
	return err
}

func (s *LocalStorage) queryFolder() *configdir.Config {
	if s.localPath != "" {
		configDirs := configdir.New("", "")
		configDirs.LocalPath = s.localPath
		return configDirs.QueryFolders(configdir.Local)[0]
	}
	configDirs := configdir.New(config.VendorName, config.ApplicationName)
	return configDirs.QueryFolders(configdir.Global)[0]
}

func (s *LocalStorage) readPlayer() error {
	if !s.folder.Exists(playerStorageFileName) {
		config.Logger.Info("no player storage found")
		return nil
	}

	data, err := s.folder.ReadFile(playerStorageFileName)
	if err != nil {
		return errors.Wrap(err, "failed to read player data")
	}

	err = json.Unmarshal(data, &s.player)
	if err == nil {
		return nil
	}

	config.Logger.Error("failed to parse player storage, clearing storage", zap.Error(err))

	s.player = playerStorage{}
	err = s.savePlayer()
	if err != nil {
		config.Logger.Error("failed to reset player storage", zap.Error(err))
	}

	return nil
}

func (s *LocalStorage) savePlayer() error {
	playerJson, err := json.Marshal(s.player)
	if err != nil {
		return errors.Wrap(err, "failed to marshal player storage")
	}

	err = s.folder.WriteFile(playerStorageFileName, playerJson)
	if err != nil {
		return errors.Wrap(err, "failed to save player storage")
	}

	return nil
}

func (s *LocalStorage) PlayerName() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.player.Name
}

func (s *LocalStorage) SetPlayerName(name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.player.Name = name
	return s.savePlayer()
}

func (s *LocalStorage) SaveMatchResult(result MatchResult) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	history, err := s.readHistory()
	if err != nil {
		config.Logger.Warn("overwriting unreadable match history", zap.Error(err))
		history = nil
	}

	history = append(history, result)
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	data, err := json.Marshal(history)
	if err != nil {
		return errors.Wrap(err, "failed to marshal match history")
	}

	err = s.folder.WriteFile(historyStorageFileName, data)
	if err != nil {
		return errors.Wrap(err, "failed to write match history")
	}

	return nil
}

func (s *LocalStorage) MatchHistory() ([]MatchResult, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.readHistory()
}

func (s *LocalStorage) readHistory() ([]MatchResult, error) {
	if !s.folder.Exists(historyStorageFileName) {
		return nil, nil
	}

	data, err := s.folder.ReadFile(historyStorageFileName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read match history")
	}

	var history []MatchResult
	err = json.Unmarshal(data, &history)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal match history")
	}

	return history, nil
}
