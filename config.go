package sunline

import (
	"encoding/json"
	"fmt"
	"os"
)

// SpawnDirection selects the initial impulse direction of spawned sunshine.
type SpawnDirection uint8

const (
	// SpawnVerticalDown pushes particles straight down with slight
	// horizontal jitter.
	SpawnVerticalDown SpawnDirection = iota
	// SpawnDiagonalRight pushes particles right and down.
	SpawnDiagonalRight
	// SpawnDiagonalLeft pushes particles left and down.
	SpawnDiagonalLeft
)

var spawnDirectionNames = [...]string{"verticalDown", "diagonalRight", "diagonalLeft"}

func (d SpawnDirection) String() string {
	if int(d) < len(spawnDirectionNames) {
		return spawnDirectionNames[d]
	}
	return fmt.Sprintf("SpawnDirection(%d)", d)
}

// MarshalText implements encoding.TextMarshaler.
func (d SpawnDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *SpawnDirection) UnmarshalText(b []byte) error {
	for i, name := range spawnDirectionNames {
		if string(b) == name {
			*d = SpawnDirection(i)
			return nil
		}
	}
	return fmt.Errorf("unknown spawn direction %q", b)
}

// InkConfig sizes the ink budget.
type InkConfig struct {
	// Max is the full ink amount.
	Max float64 `json:"max"`
	// PerUnit is the ink consumed per world unit of line.
	PerUnit float64 `json:"perUnit"`
	// UsageMultiplier speeds up consumption. Floored at 0.01.
	UsageMultiplier float64 `json:"usageMultiplier"`
	// LimitsDrawing rejects samples once the budget cannot pay for them.
	LimitsDrawing bool `json:"limitsDrawing"`
}

// PenConfig controls point acceptance and collider width.
type PenConfig struct {
	StartWidth float64 `json:"startWidth"`
	EndWidth   float64 `json:"endWidth"`
	// ProbeDistance bounds the view-axis probe used before the second point.
	// The 2D ChipmunkWorld probes the point itself and ignores it.
	ProbeDistance float64 `json:"probeDistance"`
	// BlockingLayers are the layers the pen may not start on or cross.
	BlockingLayers LayerMask `json:"blockingLayers"`
}

// SunshineConfig controls the particle spawn sequence.
type SunshineConfig struct {
	// Origin is the sun position. Nil disables spawning with a warning.
	Origin           *Vec2          `json:"origin"`
	Count            int            `json:"count"`
	Delay            float64        `json:"delay"`
	Interval         float64        `json:"interval"`
	InitialImpulse   float64        `json:"initialImpulse"`
	HorizontalSpread float64        `json:"horizontalSpread"`
	Direction        SpawnDirection `json:"direction"`
	// HorizontalForceRatio is the horizontal component of diagonal modes.
	HorizontalForceRatio float64 `json:"horizontalForceRatio"`
	// VerticalForceRange is the downward component of diagonal modes.
	VerticalForceRange Range      `json:"verticalForceRange"`
	Radius             float64    `json:"radius"`
	Physics            BodyParams `json:"physics"`
}

// FireworksConfig controls the celebration bursts.
type FireworksConfig struct {
	Enabled   bool    `json:"enabled"`
	Count     int     `json:"count"`
	Interval  float64 `json:"interval"`
	Duration  float64 `json:"duration"`
	BurstSize int     `json:"burstSize"`
	// Area is the world-space spawn rectangle used when ScreenSpace is off
	// or no camera is attached.
	Area Rect `json:"area"`
	// ScreenSpace picks positions in the 10-90% x 30-90% band of the
	// camera viewport.
	ScreenSpace bool    `json:"screenSpace"`
	Colors      []Color `json:"colors"`
}

// ContainerConfig shapes the trapezoid that stacks collected sunshine.
type ContainerConfig struct {
	TopWidth       float64 `json:"topWidth"`
	BottomWidth    float64 `json:"bottomWidth"`
	Height         float64 `json:"height"`
	VerticalOffset float64 `json:"verticalOffset"`
	Spacing        float64 `json:"spacing"`
}

// BoxDef places a box body in the level.
type BoxDef struct {
	Name     string    `json:"name"`
	Center   Vec2      `json:"center"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Angle    float64   `json:"angle"`
	Material *Material `json:"material,omitempty"`
}

// CameraConfig frames the level.
type CameraConfig struct {
	Center Vec2 `json:"center"`
	// Zoom is pixels per world unit.
	Zoom float64 `json:"zoom"`
	// Bounds keeps the view inside a world rectangle. Nil leaves it free.
	Bounds *Rect `json:"bounds,omitempty"`
	// WinPan is how long the camera takes to pan to the tree after a win.
	// Zero keeps it still.
	WinPan float64 `json:"winPan"`
}

// LevelConfig is the complete definition of one level.
type LevelConfig struct {
	Name string `json:"name"`
	// Next is the level loaded by the completion panel's next button.
	Next string `json:"next"`
	// Home is the level directory loaded by the pause panel.
	Home string `json:"home"`

	Gravity      float64        `json:"gravity"`
	Ink          InkConfig      `json:"ink"`
	Stars        StarThresholds `json:"stars"`
	Pen          PenConfig      `json:"pen"`
	LinePhysics  BodyParams     `json:"linePhysics"`
	LineMaterial *Material      `json:"lineMaterial,omitempty"`
	// InitialDownwardImpulse nudges the line off its rest pose on release.
	InitialDownwardImpulse float64 `json:"initialDownwardImpulse"`
	// TriggerDelayedDrops releases Drops together with the line.
	TriggerDelayedDrops bool `json:"triggerDelayedDrops"`

	Sunshine     SunshineConfig  `json:"sunshine"`
	WinThreshold int             `json:"winThreshold"`
	Fireworks    FireworksConfig `json:"fireworks"`

	// Collector is the tree position; the container hangs below it.
	Collector Vec2            `json:"collector"`
	Container ContainerConfig `json:"container"`

	Obstacles []BoxDef     `json:"obstacles"`
	Drops     []BoxDef     `json:"drops"`
	Camera    CameraConfig `json:"camera"`
}

// DefaultLevelConfig returns the tuning the shipped levels start from.
func DefaultLevelConfig() LevelConfig {
	return LevelConfig{
		Name:    "SampleScene",
		Next:    "No.2",
		Home:    "game directory",
		Gravity: 9.81,
		Ink: InkConfig{
			Max:             100,
			PerUnit:         1,
			UsageMultiplier: 4,
		},
		Stars: StarThresholds{OneStar: 80, TwoStar: 50, ThreeStar: 30},
		Pen: PenConfig{
			StartWidth:     0.2,
			EndWidth:       0.2,
			ProbeDistance:  100,
			BlockingLayers: LayerBlocking,
		},
		LinePhysics: BodyParams{
			Mass:         0.5,
			GravityScale: 2,
			LinearDrag:   0.5,
			AngularDrag:  0.5,
			Continuous:   true,
		},
		LineMaterial:           &Material{Name: "line", Friction: 0.05},
		InitialDownwardImpulse: 0.5,
		TriggerDelayedDrops:    true,
		Sunshine: SunshineConfig{
			Count:                5,
			Delay:                0.1,
			Interval:             0.15,
			InitialImpulse:       1,
			HorizontalSpread:     0.3,
			Direction:            SpawnVerticalDown,
			HorizontalForceRatio: 0.9,
			VerticalForceRange:   Range{Min: 0.3, Max: 0.5},
			Radius:               0.25,
			Physics: BodyParams{
				Mass:         0.05,
				GravityScale: 1,
				Continuous:   true,
			},
		},
		WinThreshold: 60,
		Fireworks: FireworksConfig{
			Enabled:     true,
			Count:       5,
			Interval:    0.3,
			Duration:    2,
			BurstSize:   30,
			Area:        Rect{X: -5, Y: -3, Width: 10, Height: 6},
			ScreenSpace: true,
			Colors: []Color{
				{1, 0, 0, 1}, {1, 0.92, 0.016, 1}, {0, 1, 0, 1},
				{0, 0, 1, 1}, {1, 0, 1, 1}, {0, 1, 1, 1},
			},
		},
		Container: ContainerConfig{
			TopWidth:    4,
			BottomWidth: 2,
			Height:      3,
			Spacing:     0.3,
		},
		Camera: CameraConfig{Zoom: 60},
	}
}

// Normalize clamps non-physical values in place and returns one warning per
// adjustment. Invalid configuration is never rejected.
func (c *LevelConfig) Normalize() []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if c.Ink.Max <= 0 {
		warn("ink.max %v is not positive; ratios use %v", c.Ink.Max, epsilon)
	}
	if c.Ink.PerUnit < 0 {
		warn("ink.perUnit %v is negative; using 0", c.Ink.PerUnit)
		c.Ink.PerUnit = 0
	}
	if c.Ink.UsageMultiplier < minUsageMultiplier {
		warn("ink.usageMultiplier %v below %v; clamped", c.Ink.UsageMultiplier, minUsageMultiplier)
		c.Ink.UsageMultiplier = minUsageMultiplier
	}
	if c.Stars.ThreeStar > c.Stars.TwoStar {
		warn("stars.threeStar %v above stars.twoStar %v; clamped", c.Stars.ThreeStar, c.Stars.TwoStar)
		c.Stars.ThreeStar = c.Stars.TwoStar
	}
	if c.Pen.StartWidth < 0 || c.Pen.EndWidth < 0 {
		warn("pen widths %v/%v negative; clamped to 0", c.Pen.StartWidth, c.Pen.EndWidth)
		c.Pen.StartWidth = max(c.Pen.StartWidth, 0)
		c.Pen.EndWidth = max(c.Pen.EndWidth, 0)
	}
	if c.Pen.ProbeDistance <= 0 {
		warn("pen.probeDistance %v is not positive; using 100", c.Pen.ProbeDistance)
		c.Pen.ProbeDistance = 100
	}
	if !c.LinePhysics.Continuous {
		warn("linePhysics.continuous is required; enabled")
		c.LinePhysics.Continuous = true
	}
	if c.LinePhysics.Mass <= 0 {
		warn("linePhysics.mass %v is not positive; using 0.5", c.LinePhysics.Mass)
		c.LinePhysics.Mass = 0.5
	}
	if c.WinThreshold <= 0 {
		warn("winThreshold %d is not positive; using 1", c.WinThreshold)
		c.WinThreshold = 1
	}

	s := &c.Sunshine
	if s.Count < 0 {
		warn("sunshine.count %d negative; using 0", s.Count)
		s.Count = 0
	}
	if s.Delay < 0 || s.Interval < 0 {
		warn("sunshine delay/interval %v/%v negative; clamped to 0", s.Delay, s.Interval)
		s.Delay = max(s.Delay, 0)
		s.Interval = max(s.Interval, 0)
	}
	if s.VerticalForceRange.Min > s.VerticalForceRange.Max {
		warn("sunshine.verticalForceRange min > max; swapped")
		s.VerticalForceRange.Min, s.VerticalForceRange.Max = s.VerticalForceRange.Max, s.VerticalForceRange.Min
	}
	s.HorizontalForceRatio = clamp01(s.HorizontalForceRatio)
	if s.Radius <= 0 {
		warn("sunshine.radius %v is not positive; using 0.25", s.Radius)
		s.Radius = 0.25
	}
	if s.Physics.Mass <= 0 {
		warn("sunshine.physics.mass %v is not positive; using 0.05", s.Physics.Mass)
		s.Physics.Mass = 0.05
	}
	s.Physics.Continuous = true

	f := &c.Fireworks
	if f.Count < 0 {
		f.Count = 0
	}
	if f.BurstSize <= 0 {
		f.BurstSize = 30
	}
	if len(f.Colors) == 0 {
		f.Colors = []Color{ColorWhite}
	}

	if c.Camera.Zoom <= 0 {
		warn("camera.zoom %v is not positive; using 60", c.Camera.Zoom)
		c.Camera.Zoom = 60
	}
	if b := c.Camera.Bounds; b != nil && (b.Width <= 0 || b.Height <= 0) {
		warn("camera.bounds %vx%v is empty; ignored", b.Width, b.Height)
		c.Camera.Bounds = nil
	}
	if c.Camera.WinPan < 0 {
		warn("camera.winPan %v negative; using 0", c.Camera.WinPan)
		c.Camera.WinPan = 0
	}
	return warnings
}

// ParseLevelConfig decodes a JSON level definition on top of
// DefaultLevelConfig and normalizes it. Normalization warnings are logged.
func ParseLevelConfig(data []byte) (LevelConfig, error) {
	cfg := DefaultLevelConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return LevelConfig{}, fmt.Errorf("parse level config: %w", err)
	}
	for _, w := range cfg.Normalize() {
		logf("sunline: level %q: %s", cfg.Name, w)
	}
	return cfg, nil
}

// LoadLevelConfig reads and parses a JSON level definition from path.
func LoadLevelConfig(path string) (LevelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LevelConfig{}, fmt.Errorf("failed to read level config: %w", err)
	}
	return ParseLevelConfig(data)
}
