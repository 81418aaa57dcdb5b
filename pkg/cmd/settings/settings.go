package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/keepnote/internal/config"
	"github.com/Paintersrp/keepnote/internal/note"
	"github.com/Paintersrp/keepnote/internal/state"
	cmdpkg "github.com/Paintersrp/keepnote/pkg/cmd"
)

func NewCmdConfig(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"settings"},
		Short:   "Show and change the keepnote configuration.",
		Long: heredoc.Doc(`
			The configuration lives in ~/.config/keepnote/config.toml unless --config
			names another file. It is created from a commented template on first use.
			KEEPNOTE_* environment variables override file values, for example
			KEEPNOTE_NOTEPATH or KEEPNOTE_SEARCH_PAGER.
		`),
		Example: heredoc.Doc(`
			keepnote config path
			keepnote config show --format yaml
			keepnote config set editor "code -w"
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.Annotations = map[string]string{cmdpkg.SkipLoad: "true"}

	cmd.AddCommand(
		newCmdPath(s),
		newCmdShow(s),
		newCmdEdit(s),
		newCmdSet(s),
	)
	return cmd
}

// configPath returns the --config override or the default location.
func configPath(cmd *cobra.Command, s *state.State) (string, string, error) {
	home := s.Home
	if home == "" {
		var err error
		if home, err = state.GetHomeDir(); err != nil {
			return "", "", err
		}
	}
	if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
		return f.Value.String(), home, nil
	}
	return config.GetConfigPath(home), home, nil
}

func newCmdPath(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the configuration file path.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{cmdpkg.SkipLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _, err := configPath(cmd, s)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func newCmdShow(s *state.State) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration.",
		Long: heredoc.Doc(`
			Prints the configuration after defaults and environment overrides are
			applied, as toml (default), yaml or json.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Show(cmd.OutOrStdout(), s.Config, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "Output format: toml, yaml or json.")
	return cmd
}

// Show encodes cfg to w in the named format.
func Show(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "toml", "":
		return toml.NewEncoder(w).Encode(cfg)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	default:
		return fmt.Errorf("unknown format %q, expected toml, yaml or json", format)
	}
}

func newCmdEdit(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:         "edit",
		Short:       "Open the configuration file in your editor.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{cmdpkg.SkipLoad: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, home, err := configPath(cmd, s)
			if err != nil {
				return err
			}
			if err := config.EnsureConfigExists(path, home); err != nil {
				return err
			}

			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = config.DefaultEditor
			}
			if cfg, err := state.LoadConfig(home, path); err == nil {
				editor = cfg.Editor
			} else {
				s.Logger.Warn("editing an invalid configuration", "path", path, "err", err)
			}

			launcher, err := note.NewLauncher(editor, note.Hooks{})
			if err != nil {
				return err
			}
			if err := launcher.Open(cmd.Context(), path, 0); err != nil {
				return err
			}

			if _, err := state.LoadConfig(home, path); err != nil {
				return fmt.Errorf("configuration is invalid: %w", err)
			}
			cmd.Println(color.GreenString("Configuration is valid."))
			return nil
		},
	}
}

func newCmdSet(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one configuration value.",
		Long: heredoc.Docf(`
			Sets a configuration value and saves the file. Comments in the file are
			not kept.

			Keys:
			  %s
		`, strings.Join(config.Keys, "\n  ")),
		Example: "keepnote config set search.pager builtin",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.Set(args[0], args[1]); err != nil {
				return err
			}
			cmd.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}
