package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"verbose": zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNew_WritesAtLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New("warn", buf)

	log.Info().Msg("hidden")
	log.Warn().Str("ticker", "AAPL").Msg("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("Expected info message to be filtered, got: %s", output)
	}
	if !strings.Contains(output, "shown") || !strings.Contains(output, "AAPL") {
		t.Errorf("Expected warn message with field, got: %s", output)
	}
}

func TestNewJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewJSON("info", buf)

	log.Info().Str("ticker", "MSFT").Msg("quote")

	if !strings.Contains(buf.String(), `"ticker":"MSFT"`) {
		t.Errorf("Expected JSON field in output, got: %s", buf.String())
	}
}

func TestNewSilent(t *testing.T) {
	log := NewSilent()
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("Expected disabled logger, got level %v", log.GetLevel())
	}
}
