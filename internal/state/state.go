package state

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Paintersrp/keepnote/internal/config"
	"github.com/Paintersrp/keepnote/internal/deps"
	"github.com/Paintersrp/keepnote/internal/fzf"
	"github.com/Paintersrp/keepnote/internal/handler"
	"github.com/Paintersrp/keepnote/internal/mode"
	"github.com/Paintersrp/keepnote/internal/note"
	"github.com/Paintersrp/keepnote/internal/preview"
	"github.com/Paintersrp/keepnote/internal/ripgrep"
	"github.com/Paintersrp/keepnote/internal/vcs"
)

// State is what every command needs: the loaded configuration and the
// components built from it. Commands receive it before flags are parsed,
// and Load fills it in once they are.
type State struct {
	Config  *config.Config
	Handler *handler.FileHandler
	Home    string
	Notes   string
	Logger  *slog.Logger
}

func NewState(home string) *State {
	return &State{Home: home, Logger: slog.Default()}
}

// Load reads the configuration at configPath, or the default location when
// empty, and makes sure the notes directory exists.
func (s *State) Load(configPath string) error {
	if s.Home == "" {
		home, err := GetHomeDir()
		if err != nil {
			return err
		}
		s.Home = home
	}

	cfg, err := LoadConfig(s.Home, configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureNotesDir(); err != nil {
		return err
	}

	s.Config = cfg
	s.Notes = cfg.NotePath
	s.Handler = handler.NewFileHandler(cfg.NotePath)
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	return nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home, path string) (*config.Config, error) {
	return config.Load(home, path)
}

// Builder returns the ripgrep command builder.
func (s *State) Builder() ripgrep.Builder {
	return ripgrep.NewBuilder()
}

// Toggler returns the mode toggle for root, starting in initial.
func (s *State) Toggler(root string, initial mode.Mode) mode.Toggler {
	return mode.Toggler{
		Prompts: mode.DefaultPrompts,
		Initial: initial,
		Source:  s.Builder(),
		Root:    root,
	}
}

// Pager returns the configured preview renderer.
func (s *State) Pager() preview.Pager {
	return preview.New(s.Config.PagerKind(), s.Config.Search.PreviewContext)
}

// Keys returns the configured fzf key bindings.
func (s *State) Keys() fzf.Keys {
	return fzf.Keys{
		fzf.Toggle:       s.Config.Keys.Toggle,
		fzf.Delete:       s.Config.Keys.Delete,
		fzf.Copy:         s.Config.Keys.Copy,
		fzf.QueryChanged: fzf.DefaultKeys[fzf.QueryChanged],
	}
}

// Requirements lists the programs a search session needs.
func (s *State) Requirements() []deps.Requirement {
	reqs := []deps.Requirement{deps.Searcher, deps.Selector}
	if s.Config.PagerKind() == preview.KindBat {
		reqs = append(reqs, deps.Pager)
	}
	return reqs
}

// Callback returns how fzf calls back into this binary from a session that
// started in initial.
func (s *State) Callback(initial mode.Mode) (fzf.Callback, error) {
	exe, err := os.Executable()
	if err != nil {
		return fzf.Callback{}, fmt.Errorf("failed to locate keepnote executable: %w", err)
	}
	return fzf.Callback{
		Executable: exe,
		Root:       s.Notes,
		Args:       []string{"--config", s.Config.Path(), "--mode", initial.String()},
	}, nil
}

// Session builds a search session over the notes directory.
func (s *State) Session(initial mode.Mode, stderr io.Writer) (*fzf.Session, error) {
	callback, err := s.Callback(initial)
	if err != nil {
		return nil, err
	}

	builder := s.Builder()
	return fzf.NewSession(fzf.Options{
		Root:         s.Notes,
		Builder:      builder,
		Toggler:      s.Toggler(s.Notes, initial),
		Callback:     callback,
		Keys:         s.Keys(),
		Header:       vcs.Header,
		Shell:        s.Config.Search.Shell,
		Requirements: s.Requirements(),
		Stderr:       stderr,
		Logger:       s.Logger,
	}), nil
}

// Hooks returns the configured note hooks.
func (s *State) Hooks(stdout, stderr io.Writer) note.Hooks {
	return note.Hooks{
		Root:   s.Notes,
		Config: s.Config.Hooks,
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Launcher returns the editor launcher with hooks attached.
func (s *State) Launcher() (*note.Launcher, error) {
	return note.NewLauncher(s.Config.Editor, s.Hooks(os.Stdout, os.Stderr))
}

// Deleter returns the note deleter for root.
func (s *State) Deleter(root string, out io.Writer) note.Deleter {
	return note.Deleter{
		Root: root,
		Mode: s.Config.Delete(),
		Out:  out,
	}
}
