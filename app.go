package textmesh

import (
	"context"
	"time"

	"github.com/gogpu/textmesh/asset"
	"github.com/gogpu/textmesh/font"
	"github.com/gogpu/textmesh/internal/logging"
	"github.com/gogpu/textmesh/mesh"
	"github.com/gogpu/textmesh/meshcache"
)

// TickStats summarizes one App tick.
type TickStats struct {
	// Tick is the 1-based number of the tick.
	Tick uint64
	// Published counts fonts the loader added to the store.
	Published int
	// ReadinessChanged counts objects whose readiness state changed.
	ReadinessChanged int
	// Pass is the synchronizer result.
	Pass PassStats
}

// App wires the stores, the font loader, the mesh cache and the two
// components.
//
// App is not safe for concurrent use; drive it from one goroutine.
type App struct {
	Scene     *Scene
	Fonts     *asset.Store[*font.Font]
	Meshes    *asset.Store[*mesh.Mesh]
	Materials *asset.Store[*mesh.Material]
	Loader    *font.Loader
	Cache     *meshcache.Cache

	Watcher      *FontReadyWatcher
	Synchronizer *Synchronizer

	tick uint64
}

// NewApp creates an app with empty stores and scene.
func NewApp(opts ...Option) *App {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		Scene:     NewScene(),
		Fonts:     asset.NewStore[*font.Font](),
		Meshes:    asset.NewStore[*mesh.Mesh](),
		Materials: asset.NewStore[*mesh.Material](),
		Cache:     meshcache.NewWithConfig(o.cacheConfig),
	}
	a.Loader = font.NewLoader(a.Fonts, o.loaderOpts...)
	a.Watcher = NewFontReadyWatcher(a.Fonts)
	a.Synchronizer = NewSynchronizer(a.Fonts, a.Meshes, a.Materials, a.Cache, o.generator)
	return a
}

// Tick runs one pass: publish finished font loads, update readiness,
// synchronize meshes, age the cache and swap the store event buffers.
func (a *App) Tick() TickStats {
	a.tick++
	st := TickStats{Tick: a.tick}

	st.Published = a.Loader.Poll()
	st.ReadinessChanged = a.Watcher.Run(a.Scene)
	st.Pass = a.Synchronizer.Run(a.Scene)
	a.Cache.Maintain()

	a.Fonts.Update()
	a.Meshes.Update()
	a.Materials.Update()

	if st.Pass.Visited > 0 || st.Published > 0 {
		logging.Logger().Debug("tick",
			"tick", st.Tick,
			"published", st.Published,
			"readiness", st.ReadinessChanged,
			"visited", st.Pass.Visited,
			"created", st.Pass.Created,
			"updated", st.Pass.Updated,
			"skipped", st.Pass.Skipped,
			"failed", st.Pass.Failed)
	}
	return st
}

// Ticks returns the number of ticks run.
func (a *App) Ticks() uint64 { return a.tick }

// Ready reports whether every object has a mesh.
func (a *App) Ready() bool {
	for _, o := range a.Scene.All() {
		if !o.Mesh.IsValid() {
			return false
		}
	}
	return true
}

// Stalled reports whether ticking can no longer make the app ready on its
// own: some object has no mesh, no font load is pending and at least one
// load failed.
func (a *App) Stalled() bool {
	return !a.Ready() && a.Loader.Pending() == 0 && a.Loader.Err() != nil
}

// RunUntilReady ticks every interval until Ready, maxTicks ticks ran or ctx
// ends. A zero interval ticks without pausing. It returns the number of
// ticks run and ctx.Err() if the context ended first.
func (a *App) RunUntilReady(ctx context.Context, maxTicks int, interval time.Duration) (int, error) {
	return a.RunUntil(ctx, maxTicks, interval, a.Ready)
}

// RunUntil is RunUntilReady with a custom stop condition, checked after
// every tick.
func (a *App) RunUntil(ctx context.Context, maxTicks int, interval time.Duration, done func() bool) (int, error) {
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	for n := 0; n < maxTicks; n++ {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		a.Tick()
		if done() {
			return n + 1, nil
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
				return n + 1, ctx.Err()
			case <-ticker.C:
			}
		}
	}
	return maxTicks, nil
}
