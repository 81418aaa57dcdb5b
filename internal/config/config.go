package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/Paintersrp/keepnote/internal/constants"
	"github.com/Paintersrp/keepnote/internal/mode"
	"github.com/Paintersrp/keepnote/internal/preview"
)

// DeleteMode selects what the delete key does with a note.
type DeleteMode string

const (
	// DeleteTrash moves the note under the trash directory of the notes root.
	DeleteTrash DeleteMode = "trash"
	// DeleteRemove unlinks the note.
	DeleteRemove DeleteMode = "remove"
)

// ParseDeleteMode validates a configured delete mode.
func ParseDeleteMode(s string) (DeleteMode, error) {
	switch DeleteMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", DeleteTrash:
		return DeleteTrash, nil
	case DeleteRemove:
		return DeleteRemove, nil
	default:
		return "", fmt.Errorf("invalid delete mode %q: use 'trash' or 'remove'", s)
	}
}

type CommandTemplate struct {
	Exec    string   `toml:"exec"              mapstructure:"exec"    yaml:"exec"              json:"exec"`
	Args    []string `toml:"args,omitempty"    mapstructure:"args"    yaml:"args,omitempty"    json:"args,omitempty"`
	Wait    *bool    `toml:"wait,omitempty"    mapstructure:"wait"    yaml:"wait,omitempty"    json:"wait,omitempty"`
	Silence *bool    `toml:"silence,omitempty" mapstructure:"silence" yaml:"silence,omitempty" json:"silence,omitempty"`
}

type HookConfig struct {
	PreOpen    []CommandTemplate `toml:"preOpen,omitempty"    mapstructure:"preOpen"    yaml:"preOpen,omitempty"    json:"preOpen,omitempty"`
	PostOpen   []CommandTemplate `toml:"postOpen,omitempty"   mapstructure:"postOpen"   yaml:"postOpen,omitempty"   json:"postOpen,omitempty"`
	PostCreate []CommandTemplate `toml:"postCreate,omitempty" mapstructure:"postCreate" yaml:"postCreate,omitempty" json:"postCreate,omitempty"`
}

type SearchConfig struct {
	InitialMode    string `toml:"initialMode"    mapstructure:"initialMode"    yaml:"initialMode"    json:"initialMode"`
	Pager          string `toml:"pager"          mapstructure:"pager"          yaml:"pager"          json:"pager"`
	PreviewContext int    `toml:"previewContext" mapstructure:"previewContext" yaml:"previewContext" json:"previewContext"`
	Shell          string `toml:"shell"          mapstructure:"shell"          yaml:"shell"          json:"shell"`
}

// KeyConfig holds the fzf keys bound to note actions. An empty key leaves
// the action unbound.
type KeyConfig struct {
	Toggle string `toml:"toggle" mapstructure:"toggle" yaml:"toggle" json:"toggle"`
	Delete string `toml:"delete" mapstructure:"delete" yaml:"delete" json:"delete"`
	Copy   string `toml:"copy"   mapstructure:"copy"   yaml:"copy"   json:"copy"`
}

type Config struct {
	NotePath   string       `toml:"notePath"   mapstructure:"notePath"   yaml:"notePath"   json:"notePath"`
	Editor     string       `toml:"editor"     mapstructure:"editor"     yaml:"editor"     json:"editor"`
	DeleteMode string       `toml:"deleteMode" mapstructure:"deleteMode" yaml:"deleteMode" json:"deleteMode"`
	Search     SearchConfig `toml:"search"     mapstructure:"search"     yaml:"search"     json:"search"`
	Keys       KeyConfig    `toml:"keys"       mapstructure:"keys"       yaml:"keys"       json:"keys"`
	Hooks      HookConfig   `toml:"hooks"      mapstructure:"hooks"      yaml:"hooks"      json:"hooks"`

	path string
}

// DefaultEditor is used when neither the configuration nor $EDITOR names one.
const DefaultEditor = "vim"

// Keys is the list of keys accepted by Set.
var Keys = []string{
	"notePath",
	"editor",
	"deleteMode",
	"search.initialMode",
	"search.pager",
	"search.previewContext",
	"search.shell",
	"keys.toggle",
	"keys.delete",
	"keys.copy",
}

func setDefaults(v *viper.Viper, home string) {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = DefaultEditor
	}

	v.SetDefault("notePath", filepath.Join(home, "notes"))
	v.SetDefault("editor", editor)
	v.SetDefault("deleteMode", string(DeleteTrash))
	v.SetDefault("search.initialMode", mode.Content.String())
	v.SetDefault("search.pager", string(preview.KindBat))
	v.SetDefault("search.previewContext", 5)
	v.SetDefault("search.shell", "/bin/sh")
	v.SetDefault("keys.toggle", "tab")
	v.SetDefault("keys.delete", "ctrl-d")
	v.SetDefault("keys.copy", "ctrl-y")
}

// Load reads the configuration file at path, or the default location under
// home when path is empty, creating it from the template first if needed.
// KEEPNOTE_* environment variables override file values.
func Load(home, path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath(home)
	}
	if err := EnsureConfigExists(path, home); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(constants.ConfigFileType)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, home)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	cfg.path = path
	cfg.NotePath = expandHome(cfg.NotePath, home)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the configuration was loaded from.
func (cfg *Config) Path() string {
	return cfg.path
}

// Validate checks every enumerated value.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.NotePath) == "" {
		return &ConfigInitError{msg: "required config variable \"notePath\" is not set"}
	}
	if strings.TrimSpace(cfg.Editor) == "" {
		return &ConfigInitError{msg: "required config variable \"editor\" is not set"}
	}
	if _, err := ParseDeleteMode(cfg.DeleteMode); err != nil {
		return &ConfigInitError{msg: err.Error()}
	}
	if _, err := mode.Parse(cfg.Search.InitialMode); err != nil {
		return &ConfigInitError{msg: err.Error()}
	}
	if _, err := preview.ParseKind(cfg.Search.Pager); err != nil {
		return &ConfigInitError{msg: err.Error()}
	}
	if cfg.Search.PreviewContext < 0 {
		return &ConfigInitError{msg: "search.previewContext must not be negative"}
	}
	return nil
}

// InitialMode returns the parsed search.initialMode.
func (cfg *Config) InitialMode() mode.Mode {
	m, _ := mode.Parse(cfg.Search.InitialMode)
	return m
}

// PagerKind returns the parsed search.pager.
func (cfg *Config) PagerKind() preview.Kind {
	k, _ := preview.ParseKind(cfg.Search.Pager)
	return k
}

// Delete returns the parsed deleteMode.
func (cfg *Config) Delete() DeleteMode {
	d, _ := ParseDeleteMode(cfg.DeleteMode)
	return d
}

// EnsureNotesDir creates the notes directory if it is missing.
func (cfg *Config) EnsureNotesDir() error {
	if err := os.MkdirAll(cfg.NotePath, 0o755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}
	return nil
}

// Set assigns one of Keys from its string form, validates, and saves.
func (cfg *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "notepath":
		cfg.NotePath = value
	case "editor":
		cfg.Editor = value
	case "deletemode":
		cfg.DeleteMode = value
	case "search.initialmode":
		cfg.Search.InitialMode = value
	case "search.pager":
		cfg.Search.Pager = value
	case "search.previewcontext":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("search.previewContext must be a number: %w", err)
		}
		cfg.Search.PreviewContext = n
	case "search.shell":
		cfg.Search.Shell = value
	case "keys.toggle":
		cfg.Keys.Toggle = value
	case "keys.delete":
		cfg.Keys.Delete = value
	case "keys.copy":
		cfg.Keys.Copy = value
	default:
		return fmt.Errorf("unknown config key %q, expected one of: %s", key, strings.Join(Keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	return cfg.Save()
}

// Save writes the configuration back to its file. Comments from the
// template are not preserved.
func (cfg *Config) Save() error {
	if cfg.path == "" {
		return errors.New("config has no file path")
	}

	file, err := os.Create(cfg.path)
	if err != nil {
		return fmt.Errorf("failed to open config for writing: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
