package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLevel(t *testing.T) {
	cases := []struct {
		name, mode string
		want       zapcore.Level
	}{
		{"", "debug", zapcore.DebugLevel},
		{"", "release", zapcore.InfoLevel},
		{"", "test", zapcore.InfoLevel},
		{"warn", "debug", zapcore.WarnLevel},
		{"ERROR", "release", zapcore.ErrorLevel},
		{"chatty", "release", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		if got := Level(tc.name, tc.mode); got != tc.want {
			t.Errorf("Level(%q, %q) = %v, want %v", tc.name, tc.mode, got, tc.want)
		}
	}
}

func TestReleaseModeWritesJSON(t *testing.T) {
	var console, file bytes.Buffer
	log := New("", "release", &console, &file)

	log.Debug("hidden")
	log.Info("swap accepted", zap.Uint("swapId", 7))
	log.Sync()

	for name, buf := range map[string]*bytes.Buffer{"console": &console, "file": &file} {
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("%s: want one line, got %q", name, buf.String())
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
			t.Fatalf("%s: not JSON: %v", name, err)
		}
		if entry["msg"] != "swap accepted" || entry["level"] != "INFO" || entry["swapId"] != float64(7) || entry["mode"] != "release" {
			t.Fatalf("%s: unexpected entry %v", name, entry)
		}
	}
}

func TestDebugModeConsoleIsText(t *testing.T) {
	var console bytes.Buffer
	log := New("", "debug", &console, nil)

	log.Debug("quiz generated")
	log.Sync()

	out := console.String()
	if !strings.Contains(out, "quiz generated") || strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("console output = %q", out)
	}
}
