// Package textmesh keeps 3D text meshes in sync with their text and with
// asynchronously loaded fonts.
//
// Each text object in a [Scene] declares what it wants to show through a
// [TextMesh]: the string plus a [Style] naming a font handle, size, depth,
// color and flattening quality. Fonts arrive later, through a
// [font.Loader], or may never arrive. Two components reconcile the two
// sides once per tick:
//
//   - [FontReadyWatcher] reads font store events and records in each
//     object's [ReadinessState] whether its font is loaded.
//   - [Synchronizer] regenerates the mesh of every object whose text or
//     readiness changed since its previous run. When the font is missing it
//     skips the object and, after more than five such attempts, logs a
//     single warning pointing at the "#mesh" label.
//
// An object whose mesh already exists has its buffers replaced in place;
// its mesh and material handles, transform and visibility are untouched.
//
// [App] wires the stores, the loader, the shared [meshcache.Cache] and both
// components, and runs them in a fixed order on every [App.Tick]:
//
//	app := textmesh.NewApp()
//	h := app.Loader.Load(ctx, "fonts/Go-Regular.ttf#mesh")
//	app.Scene.Spawn(textmesh.Bundle{Text: textmesh.NewTextMesh("Hello", h)})
//	for !app.Ready() {
//		app.Tick()
//	}
//
// # Logging
//
// textmesh is silent by default. Call [SetLogger] to route its log records,
// and those of the font and meshgen packages, to a [slog.Logger].
package textmesh
