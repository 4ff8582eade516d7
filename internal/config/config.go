package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const appName = "mread"

// Config holds all application configuration
type Config struct {
	Reader      ReaderConfig     `toml:"reader"`
	Theme       ThemeConfig      `toml:"theme"`
	Keybindings KeybindingConfig `toml:"keybindings"`
	Progress    ProgressConfig   `toml:"progress"`
	Log         LogConfig        `toml:"log"`
}

// ReaderConfig holds reading behaviour options
type ReaderConfig struct {
	EnableTutorial        bool `toml:"enable_tutorial"`
	EnableLineHighlighter bool `toml:"enable_line_highlighter"`
	ShowProgress          bool `toml:"show_progress"`
	Column                int  `toml:"column"`
	Justify               bool `toml:"justify"`
	StdinWaitMs           int  `toml:"stdin_wait_ms"`
}

// StdinWait is how long to wait for piped input before opening the pager
func (r ReaderConfig) StdinWait() time.Duration {
	return time.Duration(r.StdinWaitMs) * time.Millisecond
}

// ThemeConfig defines colors, as lipgloss color strings
type ThemeConfig struct {
	Highlighter   string `toml:"highlighter"`
	MatchFg       string `toml:"match_fg"`
	MatchBg       string `toml:"match_bg"`
	StatusBar     string `toml:"status_bar"`
	StatusBarText string `toml:"status_bar_text"`
	Progress      string `toml:"progress"`
}

// KeybindingConfig allows customizing keybindings
type KeybindingConfig struct {
	ScrollUp      []string `toml:"scroll_up"`
	ScrollDown    []string `toml:"scroll_down"`
	PageUp        []string `toml:"page_up"`
	PageDown      []string `toml:"page_down"`
	Command       []string `toml:"command"`
	Search        []string `toml:"search"`
	ReverseSearch []string `toml:"reverse_search"`
	NextMatch     []string `toml:"next_match"`
	PrevMatch     []string `toml:"prev_match"`
	Quit          []string `toml:"quit"`
}

// ProgressConfig locates the progress log
type ProgressConfig struct {
	Path string `toml:"path"`
}

// LogConfig controls the session log file
type LogConfig struct {
	File    string `toml:"file"`
	Verbose bool   `toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Reader: ReaderConfig{
			EnableTutorial:        true,
			EnableLineHighlighter: true,
			ShowProgress:          false,
			Column:                110,
			Justify:               true,
			StdinWaitMs:           5000,
		},
		Theme: ThemeConfig{
			Highlighter:   "236", // Dark gray bar
			MatchFg:       "0",   // Black
			MatchBg:       "226", // Yellow
			StatusBar:     "236",
			StatusBarText: "252",
			Progress:      "244",
		},
		Keybindings: KeybindingConfig{
			ScrollUp:      []string{"k", "up"},
			ScrollDown:    []string{"j", "down"},
			PageUp:        []string{"pgup"},
			PageDown:      []string{"pgdown"},
			Command:       []string{":"},
			Search:        []string{"/"},
			ReverseSearch: []string{"?"},
			NextMatch:     []string{"n"},
			PrevMatch:     []string{"N"},
			Quit:          []string{"ctrl+c"},
		},
	}
}

// Load loads config from file, falling back to defaults
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom loads config from an explicit path. A missing file yields defaults.
func LoadFrom(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves config to file
func Save(cfg *Config) error {
	return SaveTo(cfg, Path())
}

// SaveTo saves config to an explicit path
func SaveTo(cfg *Config, configPath string) error {
	if configPath == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Dir returns the per-user configuration directory for mread
func Dir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", appName)
}

// Path returns the config file path
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// ProgressPath returns the configured progress log path or the default one
func (c *Config) ProgressPath() string {
	if c.Progress.Path != "" {
		return c.Progress.Path
	}
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "progress.jsonl")
}

// LogPath returns the configured log file path or the default one
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, appName+".log")
}
