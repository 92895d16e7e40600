package telemetry

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
)

func TestInfoWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	Info("user.registered", map[string]any{"user_id": "u-1"})

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if payload["level"] != "info" {
		t.Fatalf("expected level info, got %v", payload["level"])
	}
	if payload["msg"] != "user.registered" {
		t.Fatalf("expected msg user.registered, got %v", payload["msg"])
	}
	if payload["user_id"] != "u-1" {
		t.Fatalf("expected user_id u-1, got %v", payload["user_id"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts field")
	}
}
