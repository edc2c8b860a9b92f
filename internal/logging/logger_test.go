package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupLogger(t *testing.T) {
	originalLogger := defaultLogger
	defer func() {
		defaultLogger = originalLogger
		slog.SetDefault(originalLogger)
	}()

	testCases := []struct {
		name          string
		level         LogLevel
		expectedLevel slog.Level
	}{
		{
			name:          "Debug level",
			level:         LevelDebug,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "Info level",
			level:         LevelInfo,
			expectedLevel: slog.LevelInfo,
		},
		{
			name:          "Warn level",
			level:         LevelWarn,
			expectedLevel: slog.LevelWarn,
		},
		{
			name:          "Error level",
			level:         LevelError,
			expectedLevel: slog.LevelError,
		},
		{
			name:          "Invalid level defaults to Info",
			level:         LogLevel("invalid"),
			expectedLevel: slog.LevelInfo,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetupLogger(&buf, tc.level)

			if defaultLogger == nil {
				t.Fatal("defaultLogger is nil after setup")
			}

			// A message below the configured level must be suppressed,
			// one at the level must appear.
			if !defaultLogger.Enabled(context.Background(), tc.expectedLevel) {
				t.Errorf("expected level %v to be enabled", tc.expectedLevel)
			}
			if defaultLogger.Enabled(context.Background(), tc.expectedLevel-1) {
				t.Errorf("expected level %v to be disabled", tc.expectedLevel-1)
			}

			defaultLogger.Log(context.Background(), tc.expectedLevel, "probe message")
			if !strings.Contains(buf.String(), "probe message") {
				t.Errorf("expected log output to contain probe message, got: %s", buf.String())
			}
		})
	}
}

func TestLevelFromEnv(t *testing.T) {
	testCases := []struct {
		name     string
		envValue string
		expected LogLevel
	}{
		{name: "Debug", envValue: "debug", expected: LevelDebug},
		{name: "Mixed case", envValue: "WARN", expected: LevelWarn},
		{name: "Unset defaults to info", envValue: "", expected: LevelInfo},
		{name: "Garbage defaults to info", envValue: "loud", expected: LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tc.envValue)
			if got := LevelFromEnv(); got != tc.expected {
				t.Errorf("LevelFromEnv() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestMaskSensitive(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected string
	}{
		{name: "Empty value", value: "", expected: "<not set>"},
		{name: "Short value", value: "abcd", expected: "<set>"},
		{name: "Long value", value: "ghp_supersecret", expected: "ghp_...***"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaskSensitive(tc.value); got != tc.expected {
				t.Errorf("MaskSensitive(%q) = %q, want %q", tc.value, got, tc.expected)
			}
		})
	}
}
