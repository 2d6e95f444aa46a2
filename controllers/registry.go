// Package controllers maintains the registry of client-side controller files
// shipped alongside frame templates, and a polling watcher that drives hot
// reload of both the registry and the frame routing snapshot.
package controllers

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// controllerSuffix marks a file as a client-side controller.
const controllerSuffix = "_controller.js"

// Controller is one discovered client-side controller file.
type Controller struct {
	// Name is the logical controller name: the relative path with the
	// suffix stripped and separators replaced by "--", e.g.
	// "users/list_controller.js" -> "users--list".
	Name string `json:"name"`
	// Path is the filesystem path of the controller file.
	Path string `json:"path"`
}

// Registry holds the discovered controllers for one root directory. It is
// safe for concurrent use: readers see a complete snapshot and Reload swaps
// the whole set.
type Registry struct {
	root   string
	logger *slog.Logger

	mu          sync.RWMutex
	controllers map[string]Controller
}

// NewRegistry creates an empty registry for root. Call Reload to populate it.
func NewRegistry(root string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		root:        root,
		logger:      logger,
		controllers: make(map[string]Controller),
	}
}

// Reload walks the root and replaces the controller set wholesale.
func (r *Registry) Reload() error {
	discovered := make(map[string]Controller)

	err := filepath.Walk(r.root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, controllerSuffix) {
			return nil
		}
		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			rel = path
		}
		name := controllerName(filepath.ToSlash(rel))
		discovered[name] = Controller{Name: name, Path: path}
		return nil
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.controllers = discovered
	r.mu.Unlock()

	r.logger.Debug("controllers: registry reloaded", "root", r.root, "controllers", len(discovered))
	return nil
}

// Get returns the controller registered under name.
func (r *Registry) Get(name string) (Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.controllers[name]
	return c, ok
}

// Names returns all registered controller names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.controllers))
	for name := range r.controllers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered controllers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.controllers)
}

// controllerName derives the logical name from a slash-separated relative path.
func controllerName(rel string) string {
	name := strings.TrimSuffix(rel, controllerSuffix)
	name = strings.TrimSuffix(name, "/")
	return strings.ReplaceAll(name, "/", "--")
}
