package font

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/textmesh/asset"
	"golang.org/x/image/font/gofont/goregular"
)

// writeFont writes Go Regular into a temp dir and returns its path.
func writeFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "GoRegular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func noSystemFonts(string) (string, error) {
	return "", errors.New("no system fonts in tests")
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLoader_MeshLabelPublishes(t *testing.T) {
	store := asset.NewStore[*Font]()
	l := NewLoader(store, WithSystemFontFinder(noSystemFonts))
	reader := store.NewReader()

	h := l.Load(context.Background(), writeFont(t)+"#mesh")
	if !h.IsValid() {
		t.Fatal("Load returned an invalid handle")
	}
	if store.Contains(h) {
		t.Fatal("font must not be published before Poll or Wait")
	}

	if err := l.Wait(waitCtx(t)); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	f, ok := store.Get(h)
	if !ok || f == nil {
		t.Fatal("font not published")
	}
	if l.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", l.Pending())
	}

	events := store.Read(reader)
	if len(events) != 1 || events[0].Kind != asset.Created || events[0].Handle != h {
		t.Errorf("events = %+v, want one Created for %v", events, h)
	}
}

func TestLoader_OtherLabelNeverPublishes(t *testing.T) {
	store := asset.NewStore[*Font]()
	l := NewLoader(store, WithSystemFontFinder(noSystemFonts))

	path := writeFont(t)
	for _, ref := range []string{path, path + "#atlas"} {
		h := l.Load(context.Background(), ref)
		if err := l.Wait(waitCtx(t)); err != nil {
			t.Fatalf("Wait(%q): %v", ref, err)
		}
		if store.Contains(h) {
			t.Errorf("%q was published", ref)
		}
	}
	if store.Len() != 0 {
		t.Errorf("store.Len() = %d, want 0", store.Len())
	}
}

func TestLoader_MissingFile(t *testing.T) {
	store := asset.NewStore[*Font]()
	var calls atomic.Int32
	find := func(string) (string, error) {
		calls.Add(1)
		return "", errors.New("nope")
	}
	l := NewLoader(store, WithSystemFontFinder(find))

	missing := filepath.Join(t.TempDir(), "Missing.ttf")
	h1 := l.Load(context.Background(), missing+"#mesh")
	h2 := l.Load(context.Background(), missing+"#mesh")

	err := l.Wait(waitCtx(t))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Wait() = %v, want ErrNotFound", err)
	}
	if store.Contains(h1) || store.Contains(h2) {
		t.Error("failed loads must stay unresolved")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("system font lookups = %d, want 1 (memoized)", got)
	}
}

func TestLoader_SystemFontFallback(t *testing.T) {
	path := writeFont(t)
	store := asset.NewStore[*Font]()
	l := NewLoader(store, WithSystemFontFinder(func(name string) (string, error) {
		if name == "GoRegular.ttf" {
			return path, nil
		}
		return "", errors.New("unknown")
	}))

	h := l.Load(context.Background(), "no/such/dir/GoRegular.ttf#mesh")
	if err := l.Wait(waitCtx(t)); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !store.Contains(h) {
		t.Error("system font fallback did not publish")
	}
}

func TestLoader_CanceledContext(t *testing.T) {
	store := asset.NewStore[*Font]()
	l := NewLoader(store, WithSystemFontFinder(noSystemFonts))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := l.Load(ctx, writeFont(t)+"#mesh")

	err := l.Wait(waitCtx(t))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() = %v, want context.Canceled", err)
	}
	if store.Contains(h) {
		t.Error("canceled load was published")
	}
}

func TestLoader_PollDoesNotBlock(t *testing.T) {
	store := asset.NewStore[*Font]()
	l := NewLoader(store)

	h := l.LoadBytes("go", goregular.TTF)
	deadline := time.Now().Add(10 * time.Second)
	for !store.Contains(h) {
		if time.Now().After(deadline) {
			t.Fatal("LoadBytes never published")
		}
		l.Poll()
		time.Sleep(time.Millisecond)
	}
	if l.Poll() != 0 {
		t.Error("second Poll should publish nothing")
	}
}

func TestLoader_Unload(t *testing.T) {
	store := asset.NewStore[*Font]()
	l := NewLoader(store)
	h := l.LoadBytes("go", goregular.TTF)
	if err := l.Wait(waitCtx(t)); err != nil {
		t.Fatal(err)
	}
	// drain the Created event of the load
	reader := store.NewReader()
	store.Read(reader)

	if !l.Unload(h) {
		t.Fatal("Unload reported nothing removed")
	}
	if store.Contains(h) {
		t.Error("font still in store")
	}
	events := store.Read(reader)
	if len(events) != 1 || events[0].Kind != asset.Removed {
		t.Errorf("events = %+v, want one Removed", events)
	}
	if l.Unload(h) {
		t.Error("second Unload should report false")
	}
}

func TestLoader_UnloadPending(t *testing.T) {
	store := asset.NewStore[*Font]()
	l := NewLoader(store)
	h := l.LoadBytes("go", goregular.TTF)
	if !l.Unload(h) {
		t.Fatal("Unload of a pending load should report true")
	}
	if err := l.Wait(waitCtx(t)); err != nil {
		t.Fatal(err)
	}
	if store.Contains(h) {
		t.Error("discarded load was published")
	}
}

func TestLoader_BadBytes(t *testing.T) {
	store := asset.NewStore[*Font]()
	l := NewLoader(store)
	l.LoadBytes("empty", nil)
	if err := l.Wait(waitCtx(t)); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("Wait() = %v, want ErrEmptyFontData", err)
	}
	if !errors.Is(l.Err(), ErrEmptyFontData) {
		t.Error("Err() should keep the failure")
	}
}
