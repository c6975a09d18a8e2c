package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"claro/internal/logger"

	"github.com/charmbracelet/log"
)

func TestInitLevels(t *testing.T) {
	tests := []struct {
		debug    bool
		expected log.Level
	}{
		{false, log.WarnLevel},
		{true, log.DebugLevel},
	}

	for _, test := range tests {
		var buf bytes.Buffer
		logger.InitWriter(&buf, test.debug, true)

		if got := log.GetLevel(); got != test.expected {
			t.Errorf("debug=%v: expected level %s, got %s", test.debug, test.expected, got)
		}
	}
}

func TestInitPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWriter(&buf, false, true)

	log.Info("hidden")
	log.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info records should be filtered, got %q", out)
	}
	if !strings.Contains(out, "CLARO") || !strings.Contains(out, "shown") {
		t.Errorf("expected prefixed warning, got %q", out)
	}
}
