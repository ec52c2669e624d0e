package shared

import (
	"bytes"
	"encoding/hex"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("Writes To Given Writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Info("hello", "key", "value")

		out := buf.String()
		if !strings.Contains(out, "hello") || !strings.Contains(out, "value") {
			t.Errorf("unexpected log output %q", out)
		}
	})

	t.Run("Nil Writer Defaults To Stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger")
		}
	})

	t.Run("Level Filtering", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)

		logger.Debug("hidden")
		if buf.Len() != 0 {
			t.Errorf("expected debug suppressed, got %q", buf.String())
		}
	})

	t.Run("WithLogger Adds Fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "test")

		logger.Info("tagged")
		if !strings.Contains(buf.String(), "component") {
			t.Errorf("expected component field in output, got %q", buf.String())
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()

	if a == b {
		t.Error("expected unique IDs")
	}
	if len(a) != 36 {
		t.Errorf("expected UUID string length 36, got %d", len(a))
	}
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatalf("failed to generate state: %v", err)
	}

	if len(a) != 32 {
		t.Errorf("expected 32 hex characters, got %d", len(a))
	}
	if _, err := hex.DecodeString(a); err != nil {
		t.Errorf("expected hex output, got %q", a)
	}

	b, err := GenerateState()
	if err != nil {
		t.Fatalf("failed to generate state: %v", err)
	}
	if a == b {
		t.Error("expected unique state tokens")
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]int{"plays": 3}

	t.Run("Compact", func(t *testing.T) {
		out, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if string(out) != `{"plays":3}` {
			t.Errorf("unexpected output %s", out)
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		out, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if !strings.Contains(string(out), "\n") {
			t.Errorf("expected indented output, got %s", out)
		}
	})
}
