package logging

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestFromContext(t *testing.T) {
	logger := New(Config{Level: slog.LevelDebug, Output: io.Discard})
	ctx := NewContext(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext did not return the stored logger")
	}
	if got := FromContext(context.Background()); got != slog.Default() {
		t.Error("FromContext without logger should return slog.Default()")
	}
	//nolint:staticcheck // nil context is tolerated
	if got := FromContext(nil); got != slog.Default() {
		t.Error("FromContext(nil) should return slog.Default()")
	}
}
