// Package techlib collects several parsed LEF files, typically one technology
// LEF plus any number of cell libraries, and answers lookups across them.
package techlib

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef"
	"github.com/OpenTraceLab/OpenTraceLEF/pkg/lef/reader"
)

// ErrNotFound is returned by lookups that match no loaded library.
var ErrNotFound = errors.New("techlib: not found")

// Entry is one loaded file.
type Entry struct {
	Path    string
	Library *lef.Library
}

// MacroRef is a macro together with the file that defined it.
type MacroRef struct {
	Path  string
	Macro *lef.Macro
}

// Repository holds loaded libraries in load order. Lookups search them in
// that order and return the first match. It is safe for concurrent use.
type Repository struct {
	mu      sync.RWMutex
	parser  *reader.Parser
	jobs    int
	entries []Entry
}

// New creates an empty repository parsing with cfg (nil for defaults).
// jobs bounds concurrent parses; 0 means GOMAXPROCS.
func New(cfg *reader.Config, jobs int) (*Repository, error) {
	p, err := reader.NewParser(cfg)
	if err != nil {
		return nil, err
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return &Repository{parser: p, jobs: jobs}, nil
}

// Add registers an already parsed library.
func (r *Repository) Add(path string, lib *lef.Library) error {
	if lib == nil {
		return fmt.Errorf("techlib: nil library for %s", path)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Path: path, Library: lib})
	return nil
}

// LoadFiles parses paths concurrently, one parser context per file, and
// adds the results in argument order. Nothing is added when any file fails.
func (r *Repository) LoadFiles(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	libs := make([]*lef.Library, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			lib, err := r.parser.ParseFile(path)
			if err != nil {
				return fmt.Errorf("techlib: parse %s: %w", path, err)
			}
			libs[i] = lib
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, path := range paths {
		r.entries = append(r.entries, Entry{Path: path, Library: libs[i]})
	}
	return nil
}

// LoadDir loads every LEF file below root. Files are added in lexical path
// order.
func (r *Repository) LoadDir(ctx context.Context, root string) error {
	paths, err := FindFiles(root)
	if err != nil {
		return err
	}
	return r.LoadFiles(ctx, paths...)
}

// FindFiles returns the LEF files below root in lexical order.
func FindFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !IsLEFFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("techlib: walk %s: %w", root, err)
	}
	slices.Sort(paths)
	return paths, nil
}

// IsLEFFile reports whether path has a LEF extension.
func IsLEFFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lef", ".tlef":
		return true
	default:
		return false
	}
}

// Entries returns a copy of the loaded files in load order.
func (r *Repository) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries)
}

// Len returns the number of loaded files.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Macro finds a macro by name. Each library applies its own name case
// policy.
func (r *Repository) Macro(name string) (MacroRef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if m, ok := e.Library.Macro(name); ok {
			return MacroRef{Path: e.Path, Macro: m}, nil
		}
	}
	return MacroRef{}, fmt.Errorf("%w: macro %s", ErrNotFound, name)
}

// Layer finds a layer by name.
func (r *Repository) Layer(name string) (*lef.Layer, error) {
	return find(r, name, "layer", (*lef.Library).Layer)
}

// Site finds a site by name.
func (r *Repository) Site(name string) (*lef.Site, error) {
	return find(r, name, "site", (*lef.Library).Site)
}

// Via finds a via by name.
func (r *Repository) Via(name string) (*lef.Via, error) {
	return find(r, name, "via", (*lef.Library).Via)
}

func find[T any](r *Repository, name, what string, get func(*lef.Library, string) (*T, bool)) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if v, ok := get(e.Library, name); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s", ErrNotFound, what, name)
}

// Duplicates returns the macro names defined by more than one file, with
// the defining paths in load order.
func (r *Repository) Duplicates() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string][]string)
	for _, e := range r.entries {
		for _, m := range e.Library.Macros() {
			paths := seen[m.Name()]
			if len(paths) > 0 && paths[len(paths)-1] == e.Path {
				continue
			}
			seen[m.Name()] = append(paths, e.Path)
		}
	}
	for name, paths := range seen {
		if len(paths) < 2 {
			delete(seen, name)
		}
	}
	return seen
}

// MissingSites returns the SITE references of macros that no loaded library
// defines, keyed by macro name. Site names are compared without case since a
// case insensitive library stores its references upper-cased.
func (r *Repository) MissingSites() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	missing := make(map[string]string)
	for _, e := range r.entries {
		for _, m := range e.Library.Macros() {
			if !m.HasSiteName() {
				continue
			}
			if !r.hasSiteLocked(m.SiteName()) {
				missing[m.Name()] = m.SiteName()
			}
		}
	}
	return missing
}

func (r *Repository) hasSiteLocked(name string) bool {
	for _, e := range r.entries {
		for _, s := range e.Library.Sites() {
			if strings.EqualFold(s.Name(), name) {
				return true
			}
		}
	}
	return false
}
