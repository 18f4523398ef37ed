package textmesh

import (
	"testing"

	"github.com/gogpu/textmesh/font"
	"github.com/gogpu/textmesh/meshcache"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.generator != nil {
		t.Error("default generator should be nil until NewSynchronizer picks MeshGenerator")
	}
	if o.cacheConfig != meshcache.DefaultConfig() {
		t.Errorf("cacheConfig = %+v, want default", o.cacheConfig)
	}
}

func TestOptionsApply(t *testing.T) {
	gen := &fakeGenerator{}
	cfg := meshcache.Config{MaxGlyphs: 8, MaxLines: 2, FrameLifetime: 1}
	find := func(string) (string, error) { return "", font.ErrNotFound }

	o := defaultOptions()
	for _, opt := range []Option{
		WithGenerator(gen),
		WithCacheConfig(cfg),
		WithLoaderOptions(font.WithSystemFontFinder(find)),
		WithLoaderOptions(font.WithSystemFontFinder(find)),
	} {
		opt(&o)
	}

	if o.generator != gen {
		t.Error("WithGenerator not applied")
	}
	if o.cacheConfig != cfg {
		t.Errorf("cacheConfig = %+v, want %+v", o.cacheConfig, cfg)
	}
	if len(o.loaderOpts) != 2 {
		t.Errorf("loader options = %d, want 2 (appended)", len(o.loaderOpts))
	}
}
