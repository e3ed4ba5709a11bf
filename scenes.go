package sunline

import (
	"errors"
	"fmt"
	"sort"
)

// ErrLevelNotFound is returned when a scene transition names a level that is
// not registered.
var ErrLevelNotFound = errors.New("level not found")

// SceneTransitioner reloads the current level or loads a named one.
type SceneTransitioner interface {
	Reload() error
	Load(name string) error
}

// LevelDirectory is a SceneTransitioner over registered level configs. The
// Home name selects the level-select screen instead of a level.
type LevelDirectory struct {
	Home string

	levels  map[string]LevelConfig
	order   []string
	current string

	onLoad func(cfg LevelConfig)
	onHome func()
}

// NewLevelDirectory creates an empty directory whose home is home.
func NewLevelDirectory(home string) *LevelDirectory {
	return &LevelDirectory{Home: home, levels: make(map[string]LevelConfig)}
}

// Register adds or replaces a level under cfg.Name.
func (d *LevelDirectory) Register(cfg LevelConfig) {
	if _, ok := d.levels[cfg.Name]; !ok {
		d.order = append(d.order, cfg.Name)
	}
	d.levels[cfg.Name] = cfg
}

// Names returns the registered level names in registration order.
func (d *LevelDirectory) Names() []string { return d.order }

// SortedNames returns the registered level names alphabetically.
func (d *LevelDirectory) SortedNames() []string {
	names := append([]string(nil), d.order...)
	sort.Strings(names)
	return names
}

// Get returns the config registered under name.
func (d *LevelDirectory) Get(name string) (LevelConfig, bool) {
	cfg, ok := d.levels[name]
	return cfg, ok
}

// Current returns the name of the loaded level, or "" on the home screen.
func (d *LevelDirectory) Current() string { return d.current }

// OnLoad sets the callback that builds a level from its config.
func (d *LevelDirectory) OnLoad(fn func(cfg LevelConfig)) { d.onLoad = fn }

// OnHome sets the callback that shows the level-select screen.
func (d *LevelDirectory) OnHome(fn func()) { d.onHome = fn }

// Load switches to the named level, or to the home screen when name is
// Home. Unknown names leave the current level untouched.
func (d *LevelDirectory) Load(name string) error {
	if name != "" && name == d.Home {
		d.current = ""
		if d.onHome != nil {
			d.onHome()
		}
		return nil
	}
	cfg, ok := d.levels[name]
	if !ok {
		return fmt.Errorf("load %q: %w", name, ErrLevelNotFound)
	}
	d.current = name
	if d.onLoad != nil {
		d.onLoad(cfg)
	}
	return nil
}

// Reload restarts the current level.
func (d *LevelDirectory) Reload() error {
	if d.current == "" {
		return fmt.Errorf("reload: no level loaded: %w", ErrLevelNotFound)
	}
	return d.Load(d.current)
}
