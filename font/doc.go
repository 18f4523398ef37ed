// Package font parses fonts for mesh generation and loads them
// asynchronously into an asset store.
//
// A [Font] carries two views of the same file: an sfnt font for glyph
// outlines and metrics and a go-text font for HarfBuzz shaping.
//
// [Loader] resolves references of the form "path#label". Loading happens in
// background goroutines; finished loads are published into the store by
// [Loader.Poll], which emits asset Created events. Only references labelled
// "mesh" are published:
//
//	loader := font.NewLoader(fonts)
//	h := loader.Load(ctx, "fonts/Inter.ttf#mesh")
//	// ... once per tick:
//	loader.Poll()
package font
