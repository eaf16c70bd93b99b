package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("METRICS_ENABLED", "false")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "permits.toml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCommandFixtureRun(t *testing.T) {
	out, _, err := execute(t, "--source", "fixture", "--today", "2020-09-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := strings.SplitN(out, "\n", 2)[0]
	if first != "2020-09-06,Alder Creek,30" {
		t.Fatalf("unexpected first row %q", first)
	}
}

func TestRootCommandJSONFormat(t *testing.T) {
	out, _, err := execute(t, "--source", "fixture", "--today", "2020-09-06", "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "[") {
		t.Fatalf("expected json array, got %q", out)
	}
}

func TestRootCommandLogsToStderr(t *testing.T) {
	out, logs, err := execute(t, "--source", "fixture", "--today", "2020-09-06", "--log-format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "run starting") {
		t.Fatalf("logs leaked to stdout: %q", out)
	}
	if !strings.Contains(logs, `"msg":"run starting"`) || !strings.Contains(logs, `"service":"permits"`) {
		t.Fatalf("expected json logs on stderr, got %q", logs)
	}
}

func TestRootCommandRejectsBadToday(t *testing.T) {
	if _, _, err := execute(t, "--source", "fixture", "--today", "09/06/2020"); err == nil {
		t.Fatal("expected error for malformed --today")
	}
}

func TestRootCommandRejectsUnknownFormat(t *testing.T) {
	if _, _, err := execute(t, "--source", "fixture", "--format", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRootCommandFlagOverridesInvalidEnv(t *testing.T) {
	t.Setenv("PERMITS_FORMAT", "xml")

	out, _, err := execute(t, "--source", "fixture", "--today", "2020-09-06", "--format", "csv")
	if err != nil {
		t.Fatalf("expected --format to override the environment, got %v", err)
	}
	if !strings.HasPrefix(out, "2020-09-06,") {
		t.Fatalf("expected csv rows, got %q", out)
	}
}

func TestRootCommandRejectsInvalidEnvWithoutFlag(t *testing.T) {
	t.Setenv("PERMITS_FORMAT", "xml")

	_, _, err := execute(t, "--source", "fixture", "--today", "2020-09-06")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("expected format validation error, got %v", err)
	}
}

func TestRootCommandRejectsArgs(t *testing.T) {
	if _, _, err := execute(t, "wawona"); err == nil {
		t.Fatal("expected error for positional args")
	}
}
