package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ghettovoice/sipparser/internal/grammar"
)

func TestGrammarErrorValue(t *testing.T) {
	t.Parallel()

	src := "a:  bad"
	err := grammar.Wrap("header", grammar.FailKind(grammar.KindHostname, "toplabel", src[2:], errors.New("no letter")))
	grammar.Locate(err, src)
	ge, _ := grammar.AsError(err)

	var buf bytes.Buffer
	logger := slog.New(newHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	logger.Debug("parse failed", slog.Any("grammar", ge))

	out := buf.String()
	for _, want := range []string{
		`grammar.kind="invalid hostname label"`,
		"grammar.rule=header",
		"grammar.offset=2",
		`grammar.near="  bad"`,
		"grammar.backtrace=1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output = %q, want it to contain %q", out, want)
		}
	}

	if got, want := GrammarErrorValue(nil).String(), "<nil>"; got != want {
		t.Errorf("GrammarErrorValue(nil) = %q, want %q", got, want)
	}
}

func TestShortStringValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"INVITE sip:bob@example.com SIP/2.0", 6, "INVITE..."},
		{"short", 64, "short"},
		{"Привет", 2, "Пр..."},
		{"unlimited", 0, "unlimited"},
	}
	for _, c := range cases {
		if got := ShortStringValue(c.in, c.max).LogValue().String(); got != c.want {
			t.Errorf("ShortStringValue(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
		if got := ShortStringValue([]byte(c.in), c.max).LogValue().String(); got != c.want {
			t.Errorf("ShortStringValue([]byte(%q), %d) = %q, want %q", c.in, c.max, got, c.want)
		}
	}
}

func TestNoop(t *testing.T) {
	t.Parallel()

	if Noop.Enabled(context.Background(), slog.LevelError) {
		t.Error("Noop.Enabled(LevelError) = true, want false")
	}
	l := Noop.With("k", "v").WithGroup("g")
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Noop.With().WithGroup().Enabled(LevelDebug) = true, want false")
	}
	if Def == nil || Dev == nil {
		t.Error("Def and Dev loggers must be set")
	}
}
