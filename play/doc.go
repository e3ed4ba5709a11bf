// Package play runs sunline levels in an ebiten window.
//
// [Game] owns the current [sunline.Level], the HUD widgets it reports to,
// and the level-select screen shown for the directory's home name. It is an
// ebiten.Game and is started with [Run]:
//
//	dir, _ := levels.Load()
//	g := play.NewGame(play.Options{Levels: dir})
//	if err := play.Run(g, play.RunConfig{Title: "Sunline", Width: 960, Height: 640}); err != nil {
//		log.Fatal(err)
//	}
//
// Rendering is flat vector geometry; the core never touches ebiten.
package play
