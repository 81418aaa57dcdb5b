package shell

import (
	"reflect"
	"testing"
)

func TestInDirQuotesDirectory(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		argv []string
		want string
	}{
		{
			name: "plain",
			dir:  "/home/me/notes",
			argv: []string{"rg", "--files"},
			want: "cd /home/me/notes && rg --files",
		},
		{
			name: "spaces",
			dir:  "/home/me/my notes",
			argv: []string{"rg", "--files"},
			want: "cd '/home/me/my notes' && rg --files",
		},
		{
			name: "metacharacters",
			dir:  "/tmp/a;rm -rf $HOME",
			argv: []string{"rg"},
			want: "cd '/tmp/a;rm -rf $HOME' && rg",
		},
		{
			name: "glob args",
			dir:  "/n",
			argv: []string{"rg", "--glob", "!COM[1-9]"},
			want: `cd /n && rg --glob \!COM\[1-9]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InDir(tt.dir, tt.argv...); got != tt.want {
				t.Fatalf("InDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithPlaceholdersLeavesPlaceholdersRaw(t *testing.T) {
	got := WithPlaceholders(Join("/usr/bin/keep note", "_callback", "preview"), "{1}", "{2}")
	want := "'/usr/bin/keep note' _callback preview {1} {2}"
	if got != want {
		t.Fatalf("WithPlaceholders() = %q, want %q", got, want)
	}

	if got := WithPlaceholders("cmd"); got != "cmd" {
		t.Fatalf("expected command unchanged without placeholders, got %q", got)
	}
}

func TestSplitEditorCommand(t *testing.T) {
	got, err := Split(`code -w --profile "Notes Profile"`)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	want := []string{"code", "-w", "--profile", "Notes Profile"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split() = %v, want %v", got, want)
	}

	if _, err := Split(`code "unterminated`); err == nil {
		t.Fatal("expected error for unterminated quote")
	}
}

func TestActionPicksFreeDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		action string
		arg    string
		want   string
	}{
		{name: "parens", action: "reload", arg: "rg --files", want: "reload(rg --files)"},
		{name: "closing paren in arg", action: "reload", arg: "cd '/n (old)' && rg", want: "reload[cd '/n (old)' && rg]"},
		{name: "parens and brackets", action: "execute", arg: "x (a) \\[1-9]", want: "execute{x (a) \\[1-9]}"},
		{name: "empty arg", action: "change-prompt", arg: "", want: "change-prompt()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Action(tt.action, tt.arg); got != tt.want {
				t.Fatalf("Action() = %q, want %q", got, tt.want)
			}
		})
	}
}
