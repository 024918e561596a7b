package slogx

import (
	"context"
	"io"
	"log/slog"
)

type discardHandler struct{}

func DiscardLogger() *slog.Logger {
	return slog.New(Discard())
}

// Discard() is adapted from https://go-review.googlesource.com/c/go/+/547956. Hopefully it will
// eventually land into stable and we'll be able to remove this.
func Discard() slog.Handler {
	return discardHandler{}
}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// New returns a text logger writing to w. Debug records are only emitted if verbose is set.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func Err(err error) slog.Attr {
	return slog.String("err", err.Error())
}

// Seed logs an optional seed, printing "none" when the source is seeded from entropy.
func Seed(seed *int64) slog.Attr {
	if seed == nil {
		return slog.String("seed", "none")
	}
	return slog.Int64("seed", *seed)
}
