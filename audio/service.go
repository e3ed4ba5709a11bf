package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/sunline"
)

// defaultBGMVolume is used when the settings store has no saved volume.
const defaultBGMVolume = 0.6

// speakerInit opens the audio device. Tests replace it.
var speakerInit = speaker.Init

// Service plays the background loop and the win chime. It is created once by
// the program and shared by reference; it lives until Stop.
//
// Every method is safe to call before Start or when audio is disabled. The
// speaker mixes on its own goroutine, so changes to running streamers are
// made under speaker.Lock.
type Service struct {
	cfg      *Config
	settings *sunline.Settings
	sr       beep.SampleRate

	mixer  *beep.Mixer
	master *effects.Volume
	bgm    *beep.Ctrl
	bgmVol *effects.Volume

	volume   float64
	running  bool
	disabled bool
}

// NewService creates a stopped service. The BGM volume is read from
// settings under sunline.KeyBGMVolume; settings may be nil.
func NewService(cfg *Config, settings *sunline.Settings) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Service{
		cfg:      cfg,
		settings: settings,
		sr:       beep.SampleRate(cfg.SampleRate),
		mixer:    &beep.Mixer{},
		volume:   defaultBGMVolume,
		disabled: !cfg.Enabled,
	}
	if settings != nil {
		s.volume = clamp01(settings.Float(sunline.KeyBGMVolume, defaultBGMVolume))
	}
	s.master = volumeStreamer(s.mixer, cfg.MasterVolume)
	s.bgmVol = volumeStreamer(loop(s.sr, bgmPhrase, 0.25), s.volume)
	s.bgm = &beep.Ctrl{Streamer: s.bgmVol}
	return s
}

// Start opens the speaker and begins the background loop. A missing audio
// backend disables the service instead of failing.
func (s *Service) Start() error {
	if s.disabled || s.running {
		return nil
	}
	if err := speakerInit(s.sr, s.sr.N(100*time.Millisecond)); err != nil {
		sunline.Logf("sunline: audio disabled: %v", err)
		s.disabled = true
		return nil
	}
	s.mixer.Add(s.bgm)
	speaker.Play(s.master)
	s.running = true
	return nil
}

// Stop silences and releases the speaker.
func (s *Service) Stop() {
	if !s.running {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.running = false
}

// Disabled reports whether the service plays nothing.
func (s *Service) Disabled() bool { return s.disabled }

// Running reports whether the speaker is open.
func (s *Service) Running() bool { return s.running }

// Volume returns the BGM volume in [0, 1].
func (s *Service) Volume() float64 { return s.volume }

// SetVolume sets and persists the BGM volume, clamped to [0, 1].
func (s *Service) SetVolume(v float64) error {
	v = clamp01(v)
	s.locked(func() {
		s.volume = v
		setLinearVolume(s.bgmVol, v)
	})
	if s.settings == nil {
		return nil
	}
	s.settings.SetFloat(sunline.KeyBGMVolume, v)
	if err := s.settings.Save(); err != nil {
		return fmt.Errorf("persist volume: %w", err)
	}
	return nil
}

// SetPaused pauses or resumes the background loop.
func (s *Service) SetPaused(paused bool) {
	s.locked(func() { s.bgm.Paused = paused })
}

// BGMPaused reports whether the background loop is paused.
func (s *Service) BGMPaused() bool { return s.bgm.Paused }

// PlayChime plays the win chime once over the background loop.
func (s *Service) PlayChime() {
	if !s.running {
		return
	}
	s.locked(func() { s.mixer.Add(phrase(s.sr, chimePhrase, 0.5)) })
}

// Publish implements sunline.EventSink.
func (s *Service) Publish(e sunline.GameEvent) {
	switch e.Type {
	case sunline.EventLevelWon:
		s.PlayChime()
	case sunline.EventPaused:
		s.SetPaused(true)
	case sunline.EventResumed, sunline.EventRestarted:
		s.SetPaused(false)
	}
}

func (s *Service) locked(fn func()) {
	if s.running {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}
