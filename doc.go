// Package sunline is the engine-independent core of a line-drawing physics
// puzzle: the player draws a line, the line falls, and sunshine particles
// roll along it into a tree.
//
// The package owns three cooperating parts:
//
//   - the pen: [Drawing] turns pointer samples into a [Polyline], a
//     [SegmentArena] of box colliders, and ink debits on an [InkBudget];
//   - the release: [Activation] makes the line and every [DelayedDrop]
//     dynamic, and [SpawnSequence] emits sunshine on the [Scheduler];
//   - the score: [Progress] counts collected particles against the win
//     threshold, lights stars live, and freezes the rating with
//     [DetermineStars] at the win.
//
// [Level] composes them for one playthrough and is ticked once per frame:
//
//	cfg, err := sunline.LoadLevelConfig("levels/sample.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	lvl := sunline.NewLevel(cfg, sunline.LevelOptions{})
//	for {
//		lvl.Update(1.0 / 60)
//	}
//
// # Physics
//
// The core talks to rigid bodies only through the [Physics] interface.
// [ChipmunkWorld] implements it on Chipmunk2D. World space has Y growing
// downward, so gravity and "down" are +Y.
//
// # Collaborators
//
// UI widgets ([ProgressIndicator], [StarIndicator], [CompletionPanel]),
// scene transitions ([SceneTransitioner]), and event consumers
// ([EventSink]) are injected through [LevelOptions]. Any of them may be
// missing; the level logs a warning and carries on.
//
// # Testing
//
// [InputRouter] accepts synthetic pointer input (InjectClick, InjectDrag)
// and [TestRunner] replays JSON scripts of such input, so whole
// play-throughs run headless.
package sunline
