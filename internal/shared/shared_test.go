package shared

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"
)

func TestPlainText(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "hero title with span",
			in:   "Bienvenue au <br /> <span class='italic text-[#c5a059]'>Tabernacle de la Foi</span>",
			want: "Bienvenue au\nTabernacle de la Foi",
		},
		{
			name: "entities",
			in:   "Foi &amp; Esp&eacute;rance",
			want: "Foi & Espérance",
		},
		{
			name: "script is dropped",
			in:   "Louange<script>alert(1)</script>",
			want: "Louange",
		},
		{
			name: "plain text untouched",
			in:   "Nouveau Message Spirituel",
			want: "Nouveau Message Spirituel",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

type fakeCmd struct{ err error }

func (f fakeCmd) Start() error { return f.err }

func TestOpenURL(t *testing.T) {
	origRuntime, origOpener := getRuntime, opener
	t.Cleanup(func() { getRuntime, opener = origRuntime, origOpener })

	t.Run("linux uses xdg-open", func(t *testing.T) {
		var gotName string
		var gotArgs []string
		getRuntime = func() string { return "linux" }
		opener = func(name string, args ...string) interface{ Start() error } {
			gotName, gotArgs = name, args
			return fakeCmd{}
		}

		if err := OpenURL("wave://"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotName != "xdg-open" || len(gotArgs) != 1 || gotArgs[0] != "wave://" {
			t.Errorf("unexpected command %s %v", gotName, gotArgs)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenURL("wave://"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})

	t.Run("start failure", func(t *testing.T) {
		getRuntime = func() string { return "darwin" }
		opener = func(string, ...string) interface{ Start() error } {
			return fakeCmd{err: errors.New("boom")}
		}
		if err := OpenURL("wave://"); err == nil {
			t.Error("expected start error to propagate")
		}
	})
}

func TestParseLogLevel(t *testing.T) {
	if got := ParseLogLevel("debug"); got != log.DebugLevel {
		t.Errorf("expected debug, got %v", got)
	}
	if got := ParseLogLevel("nonsense"); got != log.InfoLevel {
		t.Errorf("expected info fallback, got %v", got)
	}
	if got := ParseLogLevel(""); got != log.InfoLevel {
		t.Errorf("expected info for empty, got %v", got)
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a, b)
	}
}
