package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_ErrorCarriesStacktrace(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "contact-api", "INFO")

	log.Error("store unavailable", "error", "boom")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["msg"] != "store unavailable" {
		t.Errorf("unexpected msg: %v", rec["msg"])
	}
	if _, ok := rec["stacktrace"]; !ok {
		t.Error("expected stacktrace on ERROR record")
	}
	if rec["service"] != "contact-api" {
		t.Errorf("expected service attr, got %v", rec["service"])
	}
}

func TestNew_InfoHasNoStacktraceAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "", "WARN")

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected INFO suppressed at WARN, got %s", buf.String())
	}

	log.With("component", "test").Warn("kept")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := rec["stacktrace"]; ok {
		t.Error("WARN record must not carry a stacktrace")
	}
	if rec["component"] != "test" {
		t.Errorf("expected attrs preserved, got %v", rec)
	}
	if _, ok := rec["service"]; ok {
		t.Error("empty service must not be logged")
	}
}
