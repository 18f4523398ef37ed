// Package world provides the scene-graph primitives text objects live on:
// generational entity ids, a change clock with change-tracked cells, and
// the transform and visibility components.
//
// # Change tracking
//
// A Clock hands out strictly increasing ticks. Every write to a Tracked cell
// stamps the cell with a fresh tick. A system that remembers the clock value
// at the end of its previous run can ask ChangedSince(lastRun): cells written
// by anyone else since then report true, the system's own writes made during
// its run do not.
//
//	var clock world.Clock
//	cell := world.NewTracked(&clock, "Hello")
//	lastRun := clock.Now()
//	cell.Set(&clock, "World")
//	cell.ChangedSince(lastRun) // true
package world
