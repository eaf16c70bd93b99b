package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersAreNilSafe(t *testing.T) {
	Debug(nil, "ignored")
	Info(nil, "ignored")
	Warn(nil, "ignored")
	Error(nil, "ignored", errors.New("boom"))
}

func TestErrorHelperAppendsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Error(logger, "directory fetch failed", errors.New("boom"), FieldRegion, "wawona")

	out := buf.String()
	if !strings.Contains(out, "error=boom") || !strings.Contains(out, "region=wawona") {
		t.Fatalf("expected error and region fields, got %q", out)
	}
}
