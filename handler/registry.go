package handler

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// registry is the global extension-to-handler registry.
var registry = &handlerRegistry{
	factories: make(map[string]Factory),
}

type handlerRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// Register associates a file extension (".png") with a handler factory.
// Registering an extension twice is rejected; use Override to replace.
func Register(ext string, factory Factory) error {
	key := normalizeExt(ext)
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, exists := registry.factories[key]; exists {
		return fmt.Errorf("handler already registered for %s", key)
	}
	registry.factories[key] = factory
	return nil
}

// MustRegister is Register that panics on conflict. Intended for
// package init where a duplicate registration is a programming error.
func MustRegister(ext string, factory Factory) {
	if err := Register(ext, factory); err != nil {
		panic(err)
	}
}

// Override associates a file extension with a handler factory, replacing
// any existing registration.
func Override(ext string, factory Factory) {
	key := normalizeExt(ext)
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.factories[key] = factory
}

// ForPath picks the handler factory for a path by its extension.
// Unregistered extensions fall back to the text handler.
func ForPath(path string) Factory {
	key := normalizeExt(filepath.Ext(path))
	registry.mu.RLock()
	factory, ok := registry.factories[key]
	registry.mu.RUnlock()
	if ok {
		return factory
	}
	return NewText
}

// Extensions returns the registered extensions in sorted order.
func Extensions() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	exts := make([]string, 0, len(registry.factories))
	for ext := range registry.factories {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
