// Package asset provides typed handles and a change-notifying store for
// shared resources such as fonts, meshes and materials.
//
// A Store hands out Handle values that stay valid whether or not a value is
// currently stored behind them. This lets callers reference an asset that is
// still loading:
//
//	fonts := asset.NewStore[*font.Font]()
//	h := fonts.Reserve()      // handle exists, Get reports false
//	fonts.Set(h, f)           // emits a Created event
//
// Every mutation emits an Event. Events are double buffered: an event can be
// read during the update cycle it was emitted in and the following one, after
// which Update drops it. Each consumer reads through its own EventReader and
// sees every event at most once.
package asset
