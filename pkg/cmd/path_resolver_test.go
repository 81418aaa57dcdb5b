package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/keepnote/internal/config"
	"github.com/Paintersrp/keepnote/internal/state"
)

func TestResolveNotePath(t *testing.T) {
	notesDir := t.TempDir()

	st := &state.State{Config: &config.Config{NotePath: notesDir}, Notes: notesDir}

	tests := map[string]struct {
		command *cobra.Command
		input   string
		want    string
		wantErr bool
	}{
		"absolute inside notes": {
			command: &cobra.Command{Use: "open"},
			input:   filepath.Join(notesDir, "note.md"),
			want:    filepath.Join(notesDir, "note.md"),
		},
		"relative inside notes": {
			command: &cobra.Command{Use: "open"},
			input:   "note.md",
			want:    filepath.Join(notesDir, "note.md"),
		},
		"escape attempt": {
			command: &cobra.Command{Use: "open"},
			input:   "../evil.md",
			wantErr: true,
		},
		"absolute outside notes": {
			command: &cobra.Command{Use: "restore"},
			input:   filepath.Join(filepath.Dir(notesDir), "evil.md"),
			wantErr: true,
		},
		"restore infers trash directory": {
			command: &cobra.Command{Use: "restore"},
			input:   "restored.md",
			want:    filepath.Join(notesDir, ".trash", "restored.md"),
		},
		"restore respects explicit trash prefix": {
			command: &cobra.Command{Use: "restore"},
			input:   filepath.Join(".trash", "sub", "restored.md"),
			want:    filepath.Join(notesDir, ".trash", "sub", "restored.md"),
		},
		"empty": {
			command: &cobra.Command{Use: "restore"},
			input:   "",
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ResolveNotePath(tc.command, st, tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveNotePath returned error: %v", err)
			}
			if got != filepath.Clean(tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
