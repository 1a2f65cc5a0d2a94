// Package registry resolves short server names to launch commands, so
// callers can connect by name instead of repeating full command lines.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// Registry maps short server names to commands or URLs.
type Registry interface {
	// Get returns the command registered under name.
	Get(name string) (string, bool)
}

// Map is an in-memory Registry, useful for tests and embedding.
type Map map[string]string

func (m Map) Get(name string) (string, bool) {
	command, ok := m[name]
	return command, ok
}

// File is a Registry persisted as a single JSON object mapping names to
// commands, stored in the user config directory.
type File struct {
	url string
	fs  afs.Service

	mu      sync.Mutex
	entries map[string]string
	loaded  bool
}

// Default returns the registry backed by the standard config location.
func Default() *File {
	dir := os.Getenv("FUNCMCP_CONFIG_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = path.Join(home, ".config", "funcmcp")
	}
	return NewFile(path.Join(dir, "registry.json"))
}

// NewFile returns a Registry backed by the JSON file at url.
func NewFile(url string) *File {
	return &File{url: url, fs: afs.New()}
}

func (f *File) load(ctx context.Context) error {
	if f.loaded {
		return nil
	}
	f.entries = map[string]string{}
	f.loaded = true
	ok, _ := f.fs.Exists(ctx, f.url)
	if !ok {
		return nil
	}
	data, err := f.fs.DownloadWithURL(ctx, f.url)
	if err != nil {
		return fmt.Errorf("registry: cannot read %s: %w", f.url, err)
	}
	if err := json.Unmarshal(data, &f.entries); err != nil {
		return fmt.Errorf("registry: cannot decode %s: %w", f.url, err)
	}
	return nil
}

func (f *File) save(ctx context.Context) error {
	data, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return err
	}
	if err := f.fs.Upload(ctx, f.url, file.DefaultFileOsMode, strings.NewReader(string(data))); err != nil {
		return fmt.Errorf("registry: cannot write %s: %w", f.url, err)
	}
	return nil
}

// Get implements Registry. Load failures resolve as absent.
func (f *File) Get(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(context.Background()); err != nil {
		return "", false
	}
	command, ok := f.entries[name]
	return command, ok
}

// Register stores command under name and persists the registry.
func (f *File) Register(ctx context.Context, name, command string) error {
	if name == "" || command == "" {
		return fmt.Errorf("registry: name and command are required")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(ctx); err != nil {
		return err
	}
	f.entries[name] = command
	return f.save(ctx)
}

// Remove deletes the entry under name and persists the registry.
func (f *File) Remove(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(ctx); err != nil {
		return err
	}
	if _, ok := f.entries[name]; !ok {
		return fmt.Errorf("registry: %q is not registered", name)
	}
	delete(f.entries, name)
	return f.save(ctx)
}

// List returns the registered names in sorted order.
func (f *File) List(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.load(ctx); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(f.entries))
	for name := range f.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
