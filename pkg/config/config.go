/*
Package config manages the TOML config of PathServe.

	[widget]
	highlighting = true
	on_select = "log"            # navigate | clipboard | log | none
	url_template = ""            # e.g. "https://cs.example.org/{path}"
	link_label = "open"
	placeholder = ""

	[source]
	paths_file = ""
	sqlite_db = ""
	limit = 20
	cache_ttl_seconds = 30

	[server]
	max_limit = 64
	default_limit = 20
	min_prefix = 1
	max_prefix = 60
	codec = "json"               # json | msgpack

	[style]
	plain_fg = ""
	highlight_fg = "75"
	link_fg = "244"
	highlight_bold = true
	hyperlinks = true
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/pathserve/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Widget WidgetConfig `toml:"widget"`
	Source SourceConfig `toml:"source"`
	Server ServerConfig `toml:"server"`
	Style  StyleConfig  `toml:"style"`
}

// WidgetConfig controls how entries render and what selecting one does.
type WidgetConfig struct {
	Highlighting bool   `toml:"highlighting"`
	OnSelect     string `toml:"on_select"`
	URLTemplate  string `toml:"url_template"`
	LinkLabel    string `toml:"link_label"`
	Placeholder  string `toml:"placeholder"`
}

// SourceConfig points at the path list the local source is built from.
type SourceConfig struct {
	PathsFile       string `toml:"paths_file"`
	SQLiteDB        string `toml:"sqlite_db"`
	Limit           int    `toml:"limit"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit     int    `toml:"max_limit"`
	DefaultLimit int    `toml:"default_limit"`
	MinPrefix    int    `toml:"min_prefix"`
	MaxPrefix    int    `toml:"max_prefix"`
	Codec        string `toml:"codec"`
}

// StyleConfig holds terminal colors, ANSI numbers or hex.
type StyleConfig struct {
	PlainFg       string `toml:"plain_fg"`
	HighlightFg   string `toml:"highlight_fg"`
	LinkFg        string `toml:"link_fg"`
	HighlightBold bool   `toml:"highlight_bold"`
	Hyperlinks    bool   `toml:"hyperlinks"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Widget: WidgetConfig{
			Highlighting: true,
			OnSelect:     "log",
			LinkLabel:    "open",
		},
		Source: SourceConfig{
			Limit:           20,
			CacheTTLSeconds: 30,
		},
		Server: ServerConfig{
			MaxLimit:     64,
			DefaultLimit: 20,
			MinPrefix:    1,
			MaxPrefix:    60,
			Codec:        "json",
		},
		Style: StyleConfig{
			HighlightFg:   "75",
			LinkFg:        "244",
			HighlightBold: true,
			Hyperlinks:    true,
		},
	}
}

// CacheTTL is the source cache lifetime; zero disables caching.
func (c *Config) CacheTTL() time.Duration {
	if c.Source.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Source.CacheTTLSeconds) * time.Second
}

// Validate returns warnings for values that will be ignored or clamped.
func (c *Config) Validate() []string {
	var warnings []string
	if c.Server.MinPrefix < 1 {
		warnings = append(warnings, "server.min_prefix below 1; empty tokens are never completed")
	}
	if c.Server.MaxPrefix < c.Server.MinPrefix {
		warnings = append(warnings, fmt.Sprintf("server.max_prefix (%d) is below min_prefix (%d); nothing will complete", c.Server.MaxPrefix, c.Server.MinPrefix))
	}
	if c.Server.DefaultLimit < 1 {
		warnings = append(warnings, fmt.Sprintf("server.default_limit (%d) below 1; requests without a limit get max_limit", c.Server.DefaultLimit))
	}
	if c.Server.DefaultLimit > c.Server.MaxLimit {
		warnings = append(warnings, fmt.Sprintf("server.default_limit (%d) exceeds max_limit (%d)", c.Server.DefaultLimit, c.Server.MaxLimit))
	}
	if c.Server.Codec != "json" && c.Server.Codec != "msgpack" {
		warnings = append(warnings, fmt.Sprintf("server.codec %q unknown; using json", c.Server.Codec))
	}
	if c.Widget.OnSelect == "navigate" && c.Widget.URLTemplate == "" {
		warnings = append(warnings, "widget.on_select is navigate but url_template is empty")
	}
	return warnings
}

// GetConfigDir returns the config directory with fallback priority:
// 1. $PATHSERVE_CONFIG_DIR
// 2. ~/.config/pathserve
// 3. ~/Library/Application Support/pathserve (macOS)
// 4. executable dir
func GetConfigDir() (string, error) {
	if dir := os.Getenv("PATHSERVE_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.ExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "pathserve")
	if utils.WritableDir(primaryPath) {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "pathserve")
	if utils.WritableDir(macOSPath) {
		return macOSPath, nil
	}
	return utils.ExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [ConfigDir]/config.toml, created if missing
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		log.Warnf("Failed to create config directory for %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig decodes a TOML file over the defaults. Sections are decoded one
// by one; a section with bad values keeps its defaults while the others
// still apply. Only a file that is not TOML at all is an error.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	var raw struct {
		Widget toml.Primitive `toml:"widget"`
		Source toml.Primitive `toml:"source"`
		Server toml.Primitive `toml:"server"`
		Style  toml.Primitive `toml:"style"`
	}
	md, err := toml.DecodeFile(configPath, &raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	sections := []struct {
		name string
		prim toml.Primitive
		dst  any
	}{
		{"widget", raw.Widget, &config.Widget},
		{"source", raw.Source, &config.Source},
		{"server", raw.Server, &config.Server},
		{"style", raw.Style, &config.Style},
	}
	defaults := DefaultConfig()
	for _, s := range sections {
		if !md.IsDefined(s.name) {
			continue
		}
		if err := md.PrimitiveDecode(s.prim, s.dst); err != nil {
			log.Warnf("Invalid [%s] section in %s: %v. Using its defaults.", s.name, configPath, err)
			restoreSection(config, defaults, s.name)
		}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		log.Debugf("Ignoring unknown config keys: %v", undecoded)
	}
	return config, nil
}

// restoreSection undoes a partially applied section decode.
func restoreSection(dst, defaults *Config, name string) {
	switch name {
	case "widget":
		dst.Widget = defaults.Widget
	case "source":
		dst.Source = defaults.Source
	case "server":
		dst.Server = defaults.Server
	case "style":
		dst.Style = defaults.Style
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.WriteTOMLFile(config, configPath)
}

// RebuildConfigFile overwrites the default config file with defaults.
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}
