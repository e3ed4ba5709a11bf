package audio

import (
	"os"
	"strconv"
)

// Config controls the audio service.
type Config struct {
	// Enabled turns the speaker on. A disabled service accepts every call
	// and plays nothing.
	Enabled bool
	// MasterVolume scales every sound, in [0, 1].
	MasterVolume float64
	// SampleRate is the speaker rate in Hz.
	SampleRate int
}

// DefaultConfig returns the settings used when no environment overrides
// are present.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 1,
		SampleRate:   44100,
	}
}

// LoadConfig reads SUNLINE_AUDIO_ENABLED, SUNLINE_MASTER_VOLUME (0-100)
// and SUNLINE_SAMPLE_RATE over the defaults. Malformed values are ignored.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("SUNLINE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	if volume := os.Getenv("SUNLINE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clamp01(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv("SUNLINE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
