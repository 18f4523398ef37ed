package textmesh

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textmesh/asset"
	"github.com/gogpu/textmesh/font"
	"github.com/gogpu/textmesh/mesh"
	"github.com/gogpu/textmesh/meshcache"
)

// captureHandler records every log record.
type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

// count returns the number of records at level with message msg.
func (h *captureHandler) count(level slog.Level, msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level && r.Message == msg {
			n++
		}
	}
	return n
}

func (h *captureHandler) countLevel(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level {
			n++
		}
	}
	return n
}

// captureLogs routes package logging into a captureHandler for the test.
func captureLogs(t *testing.T) *captureHandler {
	t.Helper()
	h := &captureHandler{}
	SetLogger(slog.New(h))
	t.Cleanup(func() { SetLogger(nil) })
	return h
}

// fakeGenerator returns a quad whose width is the text length.
type fakeGenerator struct {
	calls int
	texts []string
	err   error
}

func (g *fakeGenerator) Generate(tm TextMesh, _ *font.Font, _ *meshcache.Cache) (mesh.Data, error) {
	g.calls++
	g.texts = append(g.texts, tm.Text)
	if g.err != nil {
		return mesh.Data{}, g.err
	}
	return quadFor(tm.Text), nil
}

func quadFor(text string) mesh.Data {
	w := float32(len(text))
	return mesh.Data{
		Positions: [][3]float32{{0, 0, 0}, {w, 0, 0}, {w, 1, 0}, {0, 1, 0}},
		Normals:   [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		UVs:       [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

// fixture is a scene with stores, a watcher and a synchronizer driven by a
// fake generator.
type fixture struct {
	scene     *Scene
	fonts     *asset.Store[*font.Font]
	meshes    *asset.Store[*mesh.Mesh]
	materials *asset.Store[*mesh.Material]
	gen       *fakeGenerator
	watcher   *FontReadyWatcher
	sync      *Synchronizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{
		scene:     NewScene(),
		fonts:     asset.NewStore[*font.Font](),
		meshes:    asset.NewStore[*mesh.Mesh](),
		materials: asset.NewStore[*mesh.Material](),
		gen:       &fakeGenerator{},
	}
	fx.watcher = NewFontReadyWatcher(fx.fonts)
	fx.sync = NewSynchronizer(fx.fonts, fx.meshes, fx.materials, meshcache.New(), fx.gen)
	return fx
}

// pass runs the watcher, then the synchronizer, then swaps event buffers.
func (fx *fixture) pass() PassStats {
	fx.watcher.Run(fx.scene)
	st := fx.sync.Run(fx.scene)
	fx.fonts.Update()
	fx.meshes.Update()
	fx.materials.Update()
	return st
}

func goRegular(t *testing.T) *font.Font {
	t.Helper()
	f, err := font.Parse("Go Regular", goregular.TTF)
	if err != nil {
		t.Fatalf("parse Go Regular: %v", err)
	}
	return f
}

func equalData(a, b mesh.Data) bool {
	if len(a.Positions) != len(b.Positions) || len(a.Indices) != len(b.Indices) ||
		len(a.Normals) != len(b.Normals) || len(a.UVs) != len(b.UVs) {
		return false
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] || a.Normals[i] != b.Normals[i] || a.UVs[i] != b.UVs[i] {
			return false
		}
	}
	for i := range a.Indices {
		if a.Indices[i] != b.Indices[i] {
			return false
		}
	}
	return true
}
