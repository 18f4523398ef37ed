package textmesh

import (
	"github.com/gogpu/textmesh/font"
	"github.com/gogpu/textmesh/meshcache"
)

// Option configures an App during creation.
//
// Example:
//
//	app := textmesh.NewApp(
//		textmesh.WithCacheConfig(meshcache.Config{MaxGlyphs: 1024}),
//		textmesh.WithGenerator(myGenerator),
//	)
type Option func(*options)

type options struct {
	generator   Generator
	cacheConfig meshcache.Config
	loaderOpts  []font.LoaderOption
}

func defaultOptions() options {
	return options{
		cacheConfig: meshcache.DefaultConfig(),
	}
}

// WithGenerator replaces the mesh generator. The default is a MeshGenerator.
func WithGenerator(g Generator) Option {
	return func(o *options) {
		o.generator = g
	}
}

// WithCacheConfig configures the shared mesh cache.
func WithCacheConfig(c meshcache.Config) Option {
	return func(o *options) {
		o.cacheConfig = c
	}
}

// WithLoaderOptions passes options to the font loader.
func WithLoaderOptions(opts ...font.LoaderOption) Option {
	return func(o *options) {
		o.loaderOpts = append(o.loaderOpts, opts...)
	}
}
