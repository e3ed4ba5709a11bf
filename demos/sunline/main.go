// sunline opens the level select (or a named level) in a window. Draw a
// line with the mouse or a finger; when you let go it falls, and the
// sunshine has to roll along it into the tree's container.
//
// Keys: Esc pauses, R restarts, - and = change music volume, F3 shows FPS.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/yohamta/donburi"
	donburievents "github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/sunline"
	"github.com/phanxgames/sunline/audio"
	"github.com/phanxgames/sunline/ecs"
	"github.com/phanxgames/sunline/levels"
	"github.com/phanxgames/sunline/play"
)

const (
	screenW = 960
	screenH = 640
)

func main() {
	level := flag.String("level", "", "level to open instead of the level select")
	settingsPath := flag.String("settings", defaultSettingsPath(), "settings file")
	debug := flag.Bool("debug", false, "print per-frame stats to stderr")
	script := flag.String("script", "", "JSON test script to play, then exit")
	flag.Parse()

	settings, err := sunline.LoadSettings(*settingsPath)
	if err != nil {
		sunline.Logf("sunline: %v; using defaults", err)
		settings = sunline.NewSettings(*settingsPath)
	}

	dir, err := levels.Load()
	if err != nil {
		log.Fatal(err)
	}

	var runner *sunline.TestRunner
	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		if runner, err = sunline.LoadTestScript(data); err != nil {
			log.Fatal(err)
		}
		if *level == "" {
			*level = dir.Names()[0]
		}
	}

	music := audio.NewService(audio.LoadConfig(), settings)
	if err := music.Start(); err != nil {
		sunline.Logf("sunline: %v", err)
	}
	defer music.Stop()

	world := donburi.NewWorld()
	score := ecs.NewScoreSystem(world)
	ecs.GameEventType.Subscribe(world, func(w donburi.World, e sunline.GameEvent) {
		if e.Type == sunline.EventLevelWon {
			s := score.Score(w)
			sunline.Logf("sunline: %s won with %d stars (%d collected, %.0f%% ink)",
				s.Level, s.Stars, s.Collected, s.InkUsed)
		}
	})
	events := sunline.MultiSink{music, ecs.NewDonburiSink(world)}

	game := play.NewGame(play.Options{
		Levels: dir,
		Events: events,
		Audio:  music,
		Debug:  *debug,
		Script: runner,
		Frame:  func(float64) { donburievents.ProcessAllEvents(world) },
	})
	if err := play.Run(game, play.RunConfig{
		Title:   "Sunline",
		Width:   screenW,
		Height:  screenH,
		ShowFPS: *debug,
		Start:   *level,
	}); err != nil {
		log.Fatal(err)
	}
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sunline-settings.json"
	}
	return filepath.Join(dir, "sunline", "settings.json")
}
