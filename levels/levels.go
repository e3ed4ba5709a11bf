// Package levels embeds the shipped level definitions.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/phanxgames/sunline"
)

// Home is the name of the level-select screen.
const Home = "game directory"

//go:embed data/*.json
var data embed.FS

// Configs parses every embedded level in file order.
func Configs() ([]sunline.LevelConfig, error) {
	return parseDir(data, "data")
}

// Register adds every embedded level to dir.
func Register(dir *sunline.LevelDirectory) error {
	cfgs, err := Configs()
	if err != nil {
		return err
	}
	for _, cfg := range cfgs {
		dir.Register(cfg)
	}
	return nil
}

// Load returns a directory holding every embedded level, homed at Home.
func Load() (*sunline.LevelDirectory, error) {
	dir := sunline.NewLevelDirectory(Home)
	if err := Register(dir); err != nil {
		return nil, err
	}
	return dir, nil
}

func parseDir(fsys fs.FS, root string) ([]sunline.LevelConfig, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("read levels: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var cfgs []sunline.LevelConfig
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(root, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read level %s: %w", e.Name(), err)
		}
		cfg, err := sunline.ParseLevelConfig(raw)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", e.Name(), err)
		}
		if prev, dup := seen[cfg.Name]; dup {
			return nil, fmt.Errorf("level %s: name %q already used by %s", e.Name(), cfg.Name, prev)
		}
		seen[cfg.Name] = e.Name()
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}
