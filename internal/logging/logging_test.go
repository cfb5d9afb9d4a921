package logging

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"DEBUG", zapcore.DebugLevel, false},
		{" warn ", zapcore.WarnLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			got, err := ParseLevel(tc.level)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseLevel(%q) expected error", tc.level)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) error: %v", tc.level, err)
			}
			if got != tc.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.level, got, tc.want)
			}
		})
	}
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	for _, format := range []string{"", "console", "json", "JSON"} {
		if err := Init(Config{Level: "debug", Format: format}); err != nil {
			t.Errorf("Init(format=%q) error: %v", format, err)
		}
	}

	if err := Init(Config{Level: "info", Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := Init(Config{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestHelpersReportCallerFrame(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	Debugf("debug %d", 1)
	With("strategy", "beep").Warnf("attempt %d", 2)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Message != "debug 1" || entries[1].Message != "attempt 2" {
		t.Errorf("messages = %q, %q", entries[0].Message, entries[1].Message)
	}
	if fields := entries[1].ContextMap(); fields["strategy"] != "beep" {
		t.Errorf("strategy field = %v, want beep", fields["strategy"])
	}
	for i, e := range entries {
		if !e.Caller.Defined || filepath.Base(e.Caller.File) != "logging_test.go" {
			t.Errorf("entry %d caller = %s, want logging_test.go", i, e.Caller)
		}
	}
}

func TestSetNilFallsBackToNop(t *testing.T) {
	Set(nil)
	Debugf("dropped")
	With("k", "v").Infof("dropped")
	Sync()
}
