package audio

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/phanxgames/sunline"
)

func disabledConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = false
	return cfg
}

func TestNewService_ReadsSavedVolume(t *testing.T) {
	settings := sunline.NewSettings("")
	settings.SetFloat(sunline.KeyBGMVolume, 0.25)

	s := NewService(disabledConfig(), settings)
	if s.Volume() != 0.25 {
		t.Errorf("Volume() = %v, want 0.25", s.Volume())
	}
	if !s.Disabled() {
		t.Error("Disabled() = false, want true")
	}
}

func TestNewService_DefaultVolume(t *testing.T) {
	s := NewService(disabledConfig(), nil)
	if s.Volume() != defaultBGMVolume {
		t.Errorf("Volume() = %v, want %v", s.Volume(), defaultBGMVolume)
	}
}

func TestService_SetVolumePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	settings := sunline.NewSettings(path)
	s := NewService(disabledConfig(), settings)

	if err := s.SetVolume(1.5); err != nil {
		t.Fatalf("SetVolume: %v", err)
	}
	if s.Volume() != 1 {
		t.Errorf("Volume() = %v, want 1 (clamped)", s.Volume())
	}

	loaded, err := sunline.LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got := loaded.Float(sunline.KeyBGMVolume, -1); got != 1 {
		t.Errorf("saved BGMVolume = %v, want 1", got)
	}
}

func TestService_PublishPauses(t *testing.T) {
	s := NewService(disabledConfig(), nil)

	s.Publish(sunline.GameEvent{Type: sunline.EventPaused})
	if !s.BGMPaused() {
		t.Error("BGM not paused after EventPaused")
	}
	s.Publish(sunline.GameEvent{Type: sunline.EventResumed})
	if s.BGMPaused() {
		t.Error("BGM still paused after EventResumed")
	}
	// Not running: the chime is dropped without touching the speaker.
	s.Publish(sunline.GameEvent{Type: sunline.EventLevelWon})
}

func TestService_StartDisabled(t *testing.T) {
	s := NewService(disabledConfig(), nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Running() {
		t.Error("disabled service reports running")
	}
	s.Stop()
}

func TestService_StartWithoutDevice(t *testing.T) {
	prevInit, prevLogf := speakerInit, sunline.Logf
	t.Cleanup(func() { speakerInit, sunline.Logf = prevInit, prevLogf })

	speakerInit = func(beep.SampleRate, int) error { return errors.New("no device") }
	var lines []string
	sunline.Logf = func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	s := NewService(DefaultConfig(), nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Running() || !s.Disabled() {
		t.Errorf("running=%v disabled=%v, want false, true", s.Running(), s.Disabled())
	}
	want := "sunline: audio disabled: no device"
	if len(lines) != 1 || lines[0] != want {
		t.Errorf("logged %q, want [%q]", lines, want)
	}
}

func TestSetLinearVolume(t *testing.T) {
	v := &effects.Volume{Base: 2}

	setLinearVolume(v, 0)
	if !v.Silent {
		t.Error("volume 0 should be silent")
	}
	setLinearVolume(v, 0.5)
	if v.Silent || math.Abs(v.Volume-(-1)) > 1e-9 {
		t.Errorf("volume 0.5: Silent=%v Volume=%v, want false, -1", v.Silent, v.Volume)
	}
	setLinearVolume(v, 1)
	if v.Volume != 0 {
		t.Errorf("volume 1: Volume = %v, want 0", v.Volume)
	}
}

func TestPhraseLength(t *testing.T) {
	sr := beep.SampleRate(1000)
	s := phrase(sr, chimePhrase, 1)

	var total int
	buf := make([][2]float64, 64)
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	var want int
	for _, n := range chimePhrase {
		want += sr.N(n.dur)
	}
	if total != want {
		t.Errorf("phrase streamed %d samples, want %d", total, want)
	}
}
