package fzf

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestCallbackCommandQuotesRoot(t *testing.T) {
	c := Callback{Executable: "/opt/keep note/keepnote", Root: "/home/me/my notes"}

	got := c.Command(Delete, "{1}")
	want := `'/opt/keep note/keepnote' _callback delete --root '/home/me/my notes' -- {1}`
	if got != want {
		t.Fatalf("Command() = %q, want %q", got, want)
	}
}

func TestCallbackPreviewCommand(t *testing.T) {
	c := Callback{Executable: "keepnote", Root: "/notes", Args: []string{"--config", "/tmp/k.toml"}}

	want := "keepnote _callback preview --root /notes --config /tmp/k.toml -- {1} {2}"
	if got := c.PreviewCommand(); got != want {
		t.Fatalf("PreviewCommand() = %q, want %q", got, want)
	}
}

func TestCallbackActions(t *testing.T) {
	c := Callback{Executable: "keepnote", Root: "/notes"}

	tests := map[Event]string{
		Toggle:       "transform(keepnote _callback toggle --root /notes)",
		Reload:       "transform(keepnote _callback reload --root /notes)",
		Delete:       "execute(keepnote _callback delete --root /notes -- {1})+transform(keepnote _callback reload --root /notes)",
		Copy:         "execute-silent(keepnote _callback copy --root /notes -- {1} {2})",
		QueryChanged: "first",
		Preview:      "",
	}

	for e, want := range tests {
		if got := c.Action(e); got != want {
			t.Errorf("Action(%s) = %q, want %q", e, got, want)
		}
	}
}

func TestCallbackActionAvoidsClosingParen(t *testing.T) {
	c := Callback{Executable: "keepnote", Root: "/notes (old)"}

	got := c.Action(Toggle)
	if !strings.HasPrefix(got, "transform[") || !strings.HasSuffix(got, "]") {
		t.Fatalf("expected bracket enclosure for a root containing ')', got %q", got)
	}
}

func TestBindingsOrderAndSkipsUnbound(t *testing.T) {
	c := Callback{Executable: "keepnote", Root: "/notes"}
	keys := Keys{QueryChanged: "change", Toggle: "tab", Copy: ""}

	got := c.Bindings(keys)
	want := []string{
		"tab:transform(keepnote _callback toggle --root /notes)",
		"change:first",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("Bindings() = %q, want %q", got, want)
	}
}

func TestParseEventRoundTrip(t *testing.T) {
	for _, e := range []Event{Toggle, Reload, Preview, Delete, Copy, QueryChanged} {
		got, err := ParseEvent(e.String())
		if err != nil {
			t.Fatalf("ParseEvent(%q) returned error: %v", e, err)
		}
		if got != e {
			t.Fatalf("ParseEvent(%q) = %v, want %v", e, got, e)
		}
	}

	if _, err := ParseEvent("explode"); err == nil {
		t.Fatal("expected error for unknown event")
	}
}

func TestDispatchUnhandled(t *testing.T) {
	d := Dispatcher{}
	err := d.Dispatch(context.Background(), Delete, Request{})
	if !errors.Is(err, ErrUnhandledEvent) {
		t.Fatalf("expected ErrUnhandledEvent, got %v", err)
	}
}

func TestRequestArg(t *testing.T) {
	req := Request{Args: []string{"a.md"}}
	if req.Arg(0) != "a.md" || req.Arg(1) != "" {
		t.Fatalf("unexpected Arg results: %q, %q", req.Arg(0), req.Arg(1))
	}
}
