// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tide-nvim/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config   `toml:"logger"`
	Nvim      NvimConfig      `toml:"nvim"`
	Highlight HighlightConfig `toml:"highlight"`

	path string // file the config was read from, if any
}

// NvimConfig describes the editor session.
type NvimConfig struct {
	Socket    string   `toml:"socket"`
	Buffer    int      `toml:"buffer"`
	Topics    []string `toml:"topics"`
	Greeting  string   `toml:"greeting"`
	Farewell  string   `toml:"farewell"`
	QueueSize int      `toml:"queue_size"`
}

// HighlightConfig controls classification and painting.
type HighlightConfig struct {
	// Language is used when the buffer name has no registered extension.
	Language string `toml:"language"`
	// Namespace names an nvim namespace to paint into and clear before
	// every pass. Empty paints ungrouped highlights.
	Namespace string `toml:"namespace"`
	// PaintNormal sends paint calls for leaves classified as Normal too.
	PaintNormal bool `toml:"paint_normal"`
	// Rules maps extra node kinds to highlight group names.
	Rules map[string]string `toml:"rules"`
	// WatchConfig reloads Rules when the config file changes.
	WatchConfig bool `toml:"watch_config"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Nvim: NvimConfig{
			Socket:    DefaultSocket,
			Buffer:    DefaultBuffer,
			Topics:    slices.Clone(DefaultTopics),
			Greeting:  DefaultGreeting,
			Farewell:  DefaultFarewell,
			QueueSize: DefaultQueueSize,
		},
		Highlight: HighlightConfig{
			Language:    DefaultLanguage,
			PaintNormal: true,
		},
	}
}

// Path returns the file the config was loaded from, or "" if none was found.
func (c *Config) Path() string {
	return c.path
}

// DefaultPath returns ~/.config/tide-nvim/config.toml, or "" when the user
// config dir is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error;
// found reports whether it existed.
func loadFromFile(filePath string, cfg *Config) (found bool, err error) {
	_, err = os.Stat(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return true, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.WarnTagf("config", "Config file '%s': unrecognized keys: %v", filePath, undecoded)
	}
	return true, nil
}

// applyEnv fills the socket from the environment nvim exports to its jobs
// when neither the file nor a flag named one.
func (c *Config) applyEnv() {
	if c.Nvim.Socket != DefaultSocket {
		return
	}
	for _, name := range socketEnvVars {
		if v := os.Getenv(name); v != "" {
			c.Nvim.Socket = v
			return
		}
	}
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if strings.TrimSpace(c.Nvim.Socket) == "" {
		c.Nvim.Socket = defaults.Nvim.Socket
	}
	if c.Nvim.Buffer < 0 {
		c.Nvim.Buffer = defaults.Nvim.Buffer
	}
	if c.Nvim.QueueSize <= 0 {
		c.Nvim.QueueSize = defaults.Nvim.QueueSize
	}
	topics := make([]string, 0, len(c.Nvim.Topics))
	for _, topic := range c.Nvim.Topics {
		if topic = strings.TrimSpace(topic); topic != "" && !slices.Contains(topics, topic) {
			topics = append(topics, topic)
		}
	}
	c.Nvim.Topics = topics

	if c.Highlight.Language == "" {
		c.Highlight.Language = defaults.Highlight.Language
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds the effective configuration: defaults, then the TOML file at
// configFilePath (or DefaultPath when empty), then the environment, then
// flags that were set on the command line, then validation.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}
	if effectivePath != "" {
		found, err := loadFromFile(effectivePath, cfg)
		if err != nil {
			return nil, err
		}
		if found {
			cfg.path = effectivePath
		}
	}

	cfg.applyEnv()
	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, nil
}

// LoadRules re-reads only the highlight rules from filePath.
func LoadRules(filePath string) (map[string]string, error) {
	var fileCfg Config
	if _, err := loadFromFile(filePath, &fileCfg); err != nil {
		return nil, err
	}
	return fileCfg.Highlight.Rules, nil
}
