// Package store loads and compiles the named template fragments used by the
// projection renderer. Fragments are assembled once, at construction, and are
// read-only afterwards.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-roster/pkg/fragment"
	"github.com/goliatone/go-roster/pkg/tags"
)

// Option configures the store before construction.
type Option func(*config)

type config struct {
	templates fs.FS
	extension string
	dict      *tags.Dictionary
	inline    map[string]string
}

// WithTemplatesFS supplies an alternate fragment bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithTemplatesDir loads fragments from a directory on disk.
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(dir) == "" {
			return
		}
		cfg.templates = os.DirFS(dir)
	}
}

// WithExtension overrides the fragment file extension (default ".html").
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithDictionary compiles fragments against a custom tag dictionary.
func WithDictionary(dict *tags.Dictionary) Option {
	return func(cfg *config) {
		if dict != nil {
			cfg.dict = dict
		}
	}
}

// WithFragment registers an inline fragment, overriding any file with the
// same name.
func WithFragment(name, text string) Option {
	return func(cfg *config) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if cfg.inline == nil {
			cfg.inline = make(map[string]string)
		}
		cfg.inline[name] = text
	}
}

// Store holds compiled fragments by name.
type Store struct {
	dict      *tags.Dictionary
	fragments map[string]*fragment.Fragment
}

// New compiles every fragment found in the configured bundle.
func New(options ...Option) (*Store, error) {
	cfg := config{
		templates: TemplatesFS(),
		extension: ".html",
		dict:      tags.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	sources := make(map[string]string)
	if cfg.templates != nil {
		entries, err := fs.Glob(cfg.templates, "*"+cfg.extension)
		if err != nil {
			return nil, fmt.Errorf("store: list templates: %w", err)
		}
		for _, entry := range entries {
			data, err := fs.ReadFile(cfg.templates, entry)
			if err != nil {
				return nil, fmt.Errorf("store: read template %q: %w", entry, err)
			}
			name := strings.TrimSuffix(path.Base(entry), cfg.extension)
			sources[name] = string(data)
		}
	}
	for name, text := range cfg.inline {
		sources[name] = text
	}
	if len(sources) == 0 {
		return nil, errors.New("store: no fragments found")
	}

	s := &Store{
		dict:      cfg.dict,
		fragments: make(map[string]*fragment.Fragment, len(sources)),
	}
	for name, text := range sources {
		frag, err := fragment.Compile(name, text, cfg.dict)
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		s.fragments[name] = frag
	}
	return s, nil
}

// MustNew panics on construction failure. Useful for init-time wiring.
func MustNew(options ...Option) *Store {
	s, err := New(options...)
	if err != nil {
		panic(err)
	}
	return s
}

// Get returns the fragment registered under name.
func (s *Store) Get(name string) (*fragment.Fragment, error) {
	if s == nil {
		return nil, errors.New("store: store is nil")
	}
	frag, ok := s.fragments[name]
	if !ok {
		return nil, fmt.Errorf("store: fragment %q not found", name)
	}
	return frag, nil
}

// MustGet panics if the fragment is missing.
func (s *Store) MustGet(name string) *fragment.Fragment {
	frag, err := s.Get(name)
	if err != nil {
		panic(err)
	}
	return frag
}

// Has reports whether a fragment exists.
func (s *Store) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.fragments[name]
	return ok
}

// Names returns the sorted fragment names.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.fragments))
	for name := range s.fragments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dictionary returns the dictionary the fragments were compiled against.
func (s *Store) Dictionary() *tags.Dictionary {
	if s == nil {
		return nil
	}
	return s.dict
}
