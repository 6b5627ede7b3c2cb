// Package log provides logging utilities.
package log

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/sipparser/internal/constraints"
	"github.com/ghettovoice/sipparser/internal/grammar"
	"github.com/ghettovoice/sipparser/internal/util"
)

const maxInputAttrLen = 64

// GrammarErrorValue returns grammar error attributes: kind, rule, offset and the input near the failure.
func GrammarErrorValue(e *grammar.Error) slog.Value {
	if e == nil {
		return slog.StringValue("<nil>")
	}
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.String("rule", e.Rule),
		slog.Int("offset", e.Offset),
		slog.String("near", util.Ellipsis(e.Input, maxInputAttrLen)),
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}
	if len(e.Backtrace) > 0 {
		attrs = append(attrs, slog.Int("backtrace", len(e.Backtrace)))
	}
	return slog.GroupValue(attrs...)
}

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.FormatByType(GrammarErrorValue),
	slogformatter.ErrorFormatter("error"),
)

// Def is a default logger.
var Def = slog.New(newHandler(
	console.NewHandler(os.Stdout, &console.HandlerOptions{
		AddSource:  true,
		Level:      slog.LevelDebug,
		TimeFormat: time.RFC3339Nano,
	}),
))

// Dev is a developer logger.
var Dev = slog.New(newHandler(
	devslog.NewHandler(os.Stdout, &devslog.Options{
		HandlerOptions: &slog.HandlerOptions{
			AddSource: true,
			Level:     slog.LevelDebug,
		},
		SortKeys:   true,
		TimeFormat: time.RFC3339Nano,
	}),
))

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

type stringValue[T constraints.Byteseq] struct {
	v   T
	max int
}

func (v stringValue[T]) LogValue() slog.Value {
	if v.max > 0 {
		return slog.StringValue(util.Ellipsis(string(v.v), v.max))
	}
	return slog.StringValue(string(v.v))
}

// ShortStringValue returns a value logger that formats v as string cut to maxLen runes.
func ShortStringValue[T constraints.Byteseq](v T, maxLen int) slog.LogValuer {
	return stringValue[T]{v: v, max: maxLen}
}
