package sunline

import (
	"bytes"
	"strings"
	"testing"
)

func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := debugOut
	debugOut = &buf
	t.Cleanup(func() { debugOut = prev })
	return &buf
}

func TestDebugLog(t *testing.T) {
	buf := captureDebug(t)
	captureLogs(t)
	lvl := NewLevel(testConfig(), LevelOptions{Physics: newFakePhysics()})

	lvl.debugLog(debugStats{tasks: 2})
	if buf.Len() != 0 {
		t.Errorf("debug output while disabled: %q", buf.String())
	}

	lvl.SetDebugMode(true)
	if !lvl.DebugMode() {
		t.Fatal("DebugMode() = false")
	}
	lvl.debugLog(debugStats{tasks: 2, points: 3, particles: 7, inkUsed: 12.5})
	out := buf.String()
	for _, want := range []string{"tasks: 2", "state: idle", "points: 3", "particles: 7", "ink: 12.5%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "warning") {
		t.Errorf("unexpected warning:\n%s", out)
	}

	buf.Reset()
	lvl.debugLog(debugStats{particles: debugMaxParticles + 1})
	if !strings.Contains(buf.String(), "warning") {
		t.Errorf("no warning above %d particles:\n%s", debugMaxParticles, buf.String())
	}
}

func TestDebugLog_FromUpdate(t *testing.T) {
	buf := captureDebug(t)
	captureLogs(t)
	lvl := NewLevel(testConfig(), LevelOptions{Physics: newFakePhysics()})
	lvl.SetDebugMode(true)
	lvl.Update(1.0 / 60)
	if !strings.Contains(buf.String(), "[sunline] frame:") {
		t.Errorf("Update did not print stats:\n%s", buf.String())
	}
}
