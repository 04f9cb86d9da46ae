// Package vision locates UI markers in screenshots via template matching.
package vision

import (
	"fmt"
	"path/filepath"
	"sync"

	"gocv.io/x/gocv"
)

// Library resolves marker identifiers ("logistics", "repairing", "standby")
// to reference template images loaded from a directory. Templates are loaded
// lazily and cached for the life of the library.
type Library struct {
	mu        sync.RWMutex
	dir       string
	templates map[string]gocv.Mat
}

// NewLibrary creates a template library rooted at dir. Each marker name
// resolves to <dir>/<name>.png.
func NewLibrary(dir string) *Library {
	return &Library{
		dir:       dir,
		templates: make(map[string]gocv.Mat),
	}
}

// Template returns the cached template for a marker name, loading it from
// disk on first use.
func (l *Library) Template(name string) (gocv.Mat, error) {
	l.mu.RLock()
	tmpl, ok := l.templates[name]
	l.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if tmpl, ok := l.templates[name]; ok {
		return tmpl, nil
	}

	path := filepath.Join(l.dir, name+".png")
	tmpl = gocv.IMRead(path, gocv.IMReadColor)
	if tmpl.Empty() {
		return gocv.Mat{}, fmt.Errorf("load template %q: unreadable or missing %s", name, path)
	}
	l.templates[name] = tmpl
	return tmpl, nil
}

// Close releases all cached templates.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for name, tmpl := range l.templates {
		tmpl.Close()
		delete(l.templates, name)
	}
	return nil
}
