package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/quillnotes/quill/internal/config"
	"github.com/quillnotes/quill/internal/constants"
	indexsvc "github.com/quillnotes/quill/internal/services/index"
)

// State wires the loaded configuration, the vault watcher, and the shared
// index service together for the command layer.
type State struct {
	Config  *config.Config
	Home    string
	Vault   string
	Watcher *VaultWatcher
	Index   *indexsvc.Service
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	watcher, err := NewVaultWatcher(cfg.VaultDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault watcher: %w", err)
	}

	indexCfg := indexsvc.Config{
		IgnoredFolders: append([]string(nil), cfg.Search.IgnoredFolders...),
		DefaultLimit:   cfg.Search.DefaultLimit,
	}
	indexService := indexsvc.NewService(cfg.VaultDir, indexCfg)
	watcher.OnChange(func(rel string) {
		indexService.QueueUpdate(rel)
	})
	watcher.OnClose(func() {
		_ = indexService.Close()
	})
	watcher.Start()

	return &State{
		Config:  cfg,
		Home:    home,
		Vault:   cfg.VaultDir,
		Watcher: watcher,
		Index:   indexService,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	err := config.EnsureConfigExists(home)
	if err != nil {
		return nil, err
	}

	return config.Load(home)
}

// Close releases resources associated with the state, including the vault
// watcher and the shared index service.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Index != nil {
		if err := s.Index.Close(); err != nil && !errors.Is(err, indexsvc.ErrClosed) {
			errs = append(errs, err)
		}
		s.Index = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
