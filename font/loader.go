package font

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/textmesh/asset"
	"github.com/gogpu/textmesh/internal/logging"
)

// result is the outcome of one background load.
type result struct {
	font *Font
	err  error
}

// pendingLoad is a load started but not yet published.
type pendingLoad struct {
	ref  Ref
	done chan result
}

// Loader loads fonts in the background and publishes them into a store.
//
// Load, LoadBytes, Pending and Unload are safe for concurrent use. Poll and
// Wait write the store and are meant to be called from the goroutine that
// drives the application.
type Loader struct {
	store   *asset.Store[*Font]
	locator *locator

	mu      sync.Mutex
	pending map[asset.ID]*pendingLoad
	errs    []error
}

// NewLoader creates a loader publishing into store.
func NewLoader(store *asset.Store[*Font], opts ...LoaderOption) *Loader {
	var o loaderOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader{
		store:   store,
		locator: newLocator(o.find),
		pending: make(map[asset.ID]*pendingLoad),
	}
}

// Store returns the store the loader publishes into.
func (l *Loader) Store() *asset.Store[*Font] { return l.store }

// Load starts loading the font referenced by ref and returns its handle
// at once. The handle resolves after a later Poll or Wait, and only if the
// reference carries the mesh label and the load succeeds.
func (l *Loader) Load(ctx context.Context, ref string) asset.Handle[*Font] {
	r := ParseRef(ref)
	return l.start(r, func() (*Font, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := l.locator.read(r.Path)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Parse(r.Path, data)
	})
}

// LoadBytes starts parsing in-memory font data. The font is always published
// for mesh text.
func (l *Loader) LoadBytes(name string, data []byte) asset.Handle[*Font] {
	return l.start(Ref{Path: name, Label: LabelMesh}, func() (*Font, error) {
		return Parse(name, data)
	})
}

func (l *Loader) start(r Ref, load func() (*Font, error)) asset.Handle[*Font] {
	h := l.store.Reserve()
	p := &pendingLoad{ref: r, done: make(chan result, 1)}

	l.mu.Lock()
	l.pending[h.ID()] = p
	l.mu.Unlock()

	logging.Logger().Debug("font load started", "ref", r.String(), "handle", h)

	go func() {
		f, err := load()
		p.done <- result{font: f, err: err}
	}()
	return h
}

// Pending returns the number of loads not yet published or discarded.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Poll publishes every finished load without blocking and returns the number
// of fonts added to the store.
func (l *Loader) Poll() int {
	published := 0
	for _, id := range l.pendingIDs() {
		p := l.lookup(id)
		if p == nil {
			continue
		}
		select {
		case res := <-p.done:
			if l.finish(id, p, res) {
				published++
			}
		default:
		}
	}
	return published
}

// Wait blocks until every pending load finished, publishing them as Poll
// does. It returns ctx.Err() if the context ends first, otherwise the joined
// errors of all failed loads so far.
func (l *Loader) Wait(ctx context.Context) error {
	for _, id := range l.pendingIDs() {
		p := l.lookup(id)
		if p == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res := <-p.done:
			l.finish(id, p, res)
		}
	}
	return l.Err()
}

// Err returns the joined errors of all failed loads, or nil.
func (l *Loader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return errors.Join(l.errs...)
}

// Unload removes a published font from the store, emitting Removed, and
// discards the load if it is still pending. It reports whether anything was
// removed or discarded.
func (l *Loader) Unload(h asset.Handle[*Font]) bool {
	l.mu.Lock()
	_, wasPending := l.pending[h.ID()]
	delete(l.pending, h.ID())
	l.mu.Unlock()

	_, removed := l.store.Remove(h)
	if removed {
		logging.Logger().Debug("font unloaded", "handle", h)
	}
	return removed || wasPending
}

// finish publishes one finished load and reports whether a font was added.
func (l *Loader) finish(id asset.ID, p *pendingLoad, res result) bool {
	l.mu.Lock()
	if l.pending[id] != p {
		// Unloaded while in flight.
		l.mu.Unlock()
		return false
	}
	delete(l.pending, id)
	if res.err != nil {
		l.errs = append(l.errs, fmt.Errorf("font: load %q: %w", p.ref.String(), res.err))
	}
	l.mu.Unlock()

	h := asset.NewHandle[*Font](id)
	log := logging.Logger()
	if res.err != nil {
		log.Warn("font load failed", "ref", p.ref.String(), "handle", h, "error", res.err)
		return false
	}
	if !p.ref.IsMesh() {
		log.Debug("font loaded without mesh label, not published", "ref", p.ref.String(), "handle", h)
		return false
	}
	l.store.Set(h, res.font)
	log.Debug("font published", "ref", p.ref.String(), "handle", h, "font", res.font.Name())
	return true
}

func (l *Loader) lookup(id asset.ID) *pendingLoad {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending[id]
}

// pendingIDs returns pending ids in allocation order so that fonts finishing
// together are published deterministically.
func (l *Loader) pendingIDs() []asset.ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]asset.ID, 0, len(l.pending))
	for id := range l.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
