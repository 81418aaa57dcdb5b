package settings

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/keepnote/internal/config"
	"github.com/Paintersrp/keepnote/internal/state"
)

func loadState(t *testing.T) *state.State {
	t.Helper()
	t.Setenv("EDITOR", "nvim")

	s := state.NewState(t.TempDir())
	if err := s.Load(""); err != nil {
		t.Fatalf("failed to load state: %v", err)
	}
	return s
}

func run(t *testing.T, s *state.State, args ...string) (string, error) {
	t.Helper()
	cmd := NewCmdConfig(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigPath(t *testing.T) {
	s := loadState(t)

	out, err := run(t, s, "path")
	if err != nil {
		t.Fatalf("config path returned error: %v", err)
	}
	want := config.GetConfigPath(s.Home) + "\n"
	if out != want {
		t.Fatalf("config path = %q, want %q", out, want)
	}
}

func TestShowFormats(t *testing.T) {
	s := loadState(t)

	tests := map[string]func(t *testing.T, out string){
		"toml": func(t *testing.T, out string) {
			if !strings.Contains(out, "notePath = "+`"`+s.Notes+`"`) {
				t.Fatalf("expected notePath in toml output:\n%s", out)
			}
			if !strings.Contains(out, "[search]") {
				t.Fatalf("expected search table in toml output:\n%s", out)
			}
		},
		"yaml": func(t *testing.T, out string) {
			var got config.Config
			if err := yaml.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("invalid yaml: %v", err)
			}
			if got.NotePath != s.Notes || got.Search.Pager != "bat" {
				t.Fatalf("unexpected yaml config: %+v", got)
			}
		},
		"json": func(t *testing.T, out string) {
			var got map[string]any
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if got["editor"] != "nvim" {
				t.Fatalf("unexpected json editor: %v", got["editor"])
			}
		},
	}

	for format, check := range tests {
		t.Run(format, func(t *testing.T) {
			var out bytes.Buffer
			if err := Show(&out, s.Config, format); err != nil {
				t.Fatalf("Show returned error: %v", err)
			}
			check(t, out.String())
		})
	}

	if err := Show(&bytes.Buffer{}, s.Config, "xml"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestSetSavesValue(t *testing.T) {
	s := loadState(t)

	if _, err := run(t, s, "set", "search.pager", "builtin"); err != nil {
		t.Fatalf("config set returned error: %v", err)
	}

	reloaded, err := state.LoadConfig(s.Home, "")
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if reloaded.Search.Pager != "builtin" {
		t.Fatalf("expected pager builtin after reload, got %q", reloaded.Search.Pager)
	}

	if _, err := run(t, s, "set", "search.pager", "less"); err == nil {
		t.Fatal("expected an error for an invalid pager")
	}
}

func TestEditOpensConfigInEditor(t *testing.T) {
	s := loadState(t)

	binDir := t.TempDir()
	logPath := filepath.Join(binDir, "editor.log")
	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" > \"$NOTE_TEST_LOG\"\n"
	if err := os.WriteFile(filepath.Join(binDir, "nvim"), []byte(script), 0o755); err != nil {
		t.Fatalf("failed to create nvim stub: %v", err)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("NOTE_TEST_LOG", logPath)

	out, err := run(t, s, "edit")
	if err != nil {
		t.Fatalf("config edit returned error: %v", err)
	}

	logged, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("editor was not started: %v", err)
	}
	if string(logged) != config.GetConfigPath(s.Home)+"\n" {
		t.Fatalf("editor args = %q", logged)
	}
	if !strings.Contains(out, "Configuration is valid.") {
		t.Fatalf("expected validation message, got %q", out)
	}
}
