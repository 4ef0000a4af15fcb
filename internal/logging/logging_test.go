package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "json", "")
	log.Info().Str("op", "add_diagnosis").Msg("diagnosis added")
	log.Debug().Msg("hidden at info")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["op"] != "add_diagnosis" || entry["level"] != "info" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestNew_LevelOverride(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "json", "debug")
	log.Debug().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug entry should be written at debug level")
	}

	buf.Reset()
	log = New(&buf, "json", "not-a-level")
	log.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Error("invalid level should fall back to info")
	}
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "text", "")
	log.Info().Str("code", "M54.5").Msg("primary changed")
	out := buf.String()
	if !strings.Contains(out, "primary changed") || !strings.Contains(out, "M54.5") {
		t.Errorf("console output = %q", out)
	}
	if strings.HasPrefix(out, "{") {
		t.Error("text format should not emit JSON")
	}
}
