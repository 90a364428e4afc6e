package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevel(t *testing.T) {
	if got := New("debug").GetLevel(); got != logrus.DebugLevel {
		t.Errorf("level = %v", got)
	}
	if got := New("loud").GetLevel(); got != logrus.InfoLevel {
		t.Errorf("fallback level = %v", got)
	}
}

func TestNewWritesJSON(t *testing.T) {
	log := New("info")
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.WithField("game", "dice").Info("wager settled")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not JSON: %q", buf.String())
	}
	if line["game"] != "dice" || line["msg"] != "wager settled" {
		t.Errorf("line = %v", line)
	}
}
