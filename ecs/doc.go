// Package ecs provides ECS adapters for sunline level events.
//
// The primary adapter is [NewDonburiSink], which bridges level events
// (strokes, line release, spawns, collections, the win) into a [Donburi]
// world as typed events. Subscribe to [GameEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	lvl := sunline.NewLevel(cfg, sunline.LevelOptions{Events: sink})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
