package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer

	quiet := New(&buf, false)
	quiet.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("non-verbose logger wrote debug output: %q", buf.String())
	}

	verbose := New(&buf, true)
	verbose.WithField("strategy", "threads").Debug("visible")
	out := buf.String()
	if !strings.Contains(out, "visible") || !strings.Contains(out, "strategy=threads") {
		t.Errorf("verbose logger output = %q", out)
	}
}

func TestNewWorker_JSONAndEnvLevel(t *testing.T) {
	t.Setenv(LevelEnv, "debug")

	var buf bytes.Buffer
	logger := NewWorker(&buf)
	logger.WithField("request", 3).Debug("handled")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("worker log is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "handled" || entry["request"] != float64(3) {
		t.Errorf("entry = %v", entry)
	}
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  logrus.Level
	}{
		{"", logrus.WarnLevel},
		{"info", logrus.InfoLevel},
		{"DEBUG", logrus.DebugLevel},
		{"nonsense", logrus.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(LevelEnv, tt.value)
			if got := LevelFromEnv(logrus.WarnLevel); got != tt.want {
				t.Errorf("LevelFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}
