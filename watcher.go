package textmesh

import (
	"github.com/gogpu/textmesh/asset"
	"github.com/gogpu/textmesh/font"
	"github.com/gogpu/textmesh/internal/logging"
	"github.com/gogpu/textmesh/world"
)

// FontReadyWatcher turns font store events into readiness state updates.
// It never generates geometry and never touches renderables.
type FontReadyWatcher struct {
	events FontEvents
	reader *asset.EventReader
}

// NewFontReadyWatcher creates a watcher reading events from the oldest one
// still buffered by events.
func NewFontReadyWatcher(events FontEvents) *FontReadyWatcher {
	return &FontReadyWatcher{events: events, reader: events.NewReader()}
}

// Run applies every event not read yet and returns the number of objects
// whose readiness state changed.
func (w *FontReadyWatcher) Run(sc *Scene) int {
	n := 0
	for _, ev := range w.events.Read(w.reader) {
		n += w.Apply(sc, ev)
	}
	return n
}

// Apply handles one event. Created marks objects using the font loaded,
// Removed marks them unloaded; other kinds are ignored. Writing the status
// an object already has is not a change. Apply returns the number of objects
// whose state changed.
func (w *FontReadyWatcher) Apply(sc *Scene, ev asset.Event[*font.Font]) int {
	var status FontStatus
	switch ev.Kind {
	case asset.Created:
		status = FontLoaded
	case asset.Removed:
		status = FontUnloaded
	default:
		return 0
	}

	n := 0
	for e, o := range sc.All() {
		if o.text.Get().Style.Font != ev.Handle {
			continue
		}
		st := o.state.Get()
		st.FontLoaded = status
		if world.SetIfChanged(&o.state, &sc.clock, st) {
			n++
			logging.Logger().Debug("font readiness changed", "entity", e, "font", ev.Handle, "status", status)
		}
	}
	return n
}
