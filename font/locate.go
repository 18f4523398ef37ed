package font

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/flopp/go-findfont"
)

// locator maps a font path to a readable file. Paths that do not exist are
// looked up by base name among the system fonts; lookups are memoized
// because scanning font directories is slow.
type locator struct {
	find func(name string) (string, error)

	mu   sync.Mutex
	memo map[string]located
}

type located struct {
	path string
	err  error
}

func newLocator(find func(string) (string, error)) *locator {
	if find == nil {
		find = findfont.Find
	}
	return &locator{find: find, memo: make(map[string]located)}
}

// read returns the bytes of the font at path, falling back to a system
// font of the same base name.
func (l *locator) read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("font: read %q: %w", path, err)
	}

	resolved, err := l.lookup(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	data, err = os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("font: read system font %q: %w", resolved, err)
	}
	return data, nil
}

func (l *locator) lookup(name string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if r, ok := l.memo[name]; ok {
		return r.path, r.err
	}
	var r located
	p, err := l.find(name)
	switch {
	case err != nil || p == "":
		r.err = fmt.Errorf("%w: %s", ErrNotFound, name)
	default:
		r.path = p
	}
	l.memo[name] = r
	return r.path, r.err
}
