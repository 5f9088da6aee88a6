package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// SearchConfig tunes how the vault index walks and answers queries.
type SearchConfig struct {
	DefaultLimit   int      `yaml:"default_limit"   json:"default_limit"`
	IgnoredFolders []string `yaml:"ignored_folders" json:"ignored_folders"`
}

// BackupConfig describes where vault archives are uploaded.
type BackupConfig struct {
	Bucket string `yaml:"bucket" json:"bucket"`
	Prefix string `yaml:"prefix" json:"prefix"`
	Region string `yaml:"region" json:"region"`
}

type Config struct {
	VaultDir string       `yaml:"vaultdir" json:"vault_dir"`
	Editor   string       `yaml:"editor"   json:"editor"`
	Search   SearchConfig `yaml:"search"   json:"search"`
	Backup   BackupConfig `yaml:"backup"   json:"backup"`

	home string `yaml:"-"`
}

var validEditorNames = []string{"nvim", "obsidian", "vscode", "code", "vim", "nano", "custom"}

var ValidEditors = func() map[string]bool {
	editors := make(map[string]bool, len(validEditorNames))
	for _, editor := range validEditorNames {
		editors[editor] = true
	}

	return editors
}()

func ValidateEditor(editor string) error {
	if _, valid := ValidEditors[editor]; valid {
		return nil
	}

	return fmt.Errorf(
		"invalid editor: %q. Please choose from %s.",
		editor,
		validEditorList(),
	)
}

func validEditorList() string {
	quoted := make([]string, len(validEditorNames))
	for i, name := range validEditorNames {
		quoted[i] = fmt.Sprintf("'%s'", name)
	}

	if len(quoted) == 0 {
		return ""
	}

	if len(quoted) == 1 {
		return quoted[0]
	}

	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

func defaults() *Config {
	return &Config{
		Search: SearchConfig{
			DefaultLimit:   50,
			IgnoredFolders: []string{".git", ".obsidian", ".trash"},
		},
	}
}

// Load reads the config file under home. An empty file yields defaults so a
// freshly initialized setup loads cleanly.
func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaults()
	cfg.home = home

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ensureDefaults()

	if cfg.Editor != "" {
		if err := ValidateEditor(cfg.Editor); err != nil {
			return nil, err
		}
	}

	cfg.syncViper()

	return cfg, nil
}

func (cfg *Config) ensureDefaults() {
	if cfg.Search.DefaultLimit <= 0 {
		cfg.Search.DefaultLimit = 50
	}
	if cfg.Search.IgnoredFolders == nil {
		cfg.Search.IgnoredFolders = []string{".git", ".obsidian", ".trash"}
	}
}

func (cfg *Config) syncViper() {
	viper.Set("vaultdir", cfg.VaultDir)
	viper.Set("editor", cfg.Editor)
	viper.Set("search_default_limit", cfg.Search.DefaultLimit)
	if cfg.Search.IgnoredFolders == nil {
		viper.Set("search_ignored_folders", []string{})
	} else {
		viper.Set("search_ignored_folders", append([]string(nil), cfg.Search.IgnoredFolders...))
	}
	viper.Set("backup_bucket", cfg.Backup.Bucket)
	viper.Set("backup_prefix", cfg.Backup.Prefix)
	viper.Set("backup_region", cfg.Backup.Region)
}

func (cfg *Config) GetConfigPath() string {
	if cfg.home != "" {
		return GetConfigPath(cfg.home)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

func (cfg *Config) ChangeEditor(editor string) error {
	if err := ValidateEditor(editor); err != nil {
		return err
	}

	cfg.Editor = editor
	return cfg.Save()
}

func (cfg *Config) ChangeVaultDir(dir string) error {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return fmt.Errorf("vault directory cannot be empty")
	}

	cfg.VaultDir = trimmed
	return cfg.Save()
}

func (cfg *Config) Save() error {
	if cfg.Editor != "" {
		if err := ValidateEditor(cfg.Editor); err != nil {
			return err
		}
	}

	cfg.ensureDefaults()
	cfg.syncViper()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}
