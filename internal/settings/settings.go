// Package settings holds the per-session state the intention reads: the
// server port and the argument template cache.
package settings

import (
	"errors"
	"fmt"

	"github.com/soyeahso/anydoor/internal/config"
	"github.com/soyeahso/anydoor/internal/logging"
	"github.com/soyeahso/anydoor/internal/store"
)

// ErrUnknownStore is returned by Open for an unsupported cache.store value.
var ErrUnknownStore = errors.New("unknown cache store")

// State is the session-scoped settings object.
type State struct {
	port      int
	cache     store.Cache
	templates Templates
	close     func() error
}

// Provider returns the active State. An error means the settings could not
// be reached.
type Provider func() (*State, error)

// Static returns a Provider that always yields s.
func Static(s *State) Provider {
	return func() (*State, error) { return s, nil }
}

// NewState creates a State around an existing cache. A nil cache gets a fresh
// in-memory one.
func NewState(port int, cache store.Cache) *State {
	if cache == nil {
		cache = store.NewMemoryCache()
	}
	s := &State{port: port, cache: cache, close: func() error { return nil }}
	if mc, ok := cache.(*store.MemoryCache); ok {
		s.templates = memoryTemplates{mc}
	}
	return s
}

// Open builds the State described by cfg. With the sqlite store the
// template database lives at paths.TemplatesDB(cfg).
func Open(cfg config.Config, paths config.Paths, log *logging.Logger) (*State, error) {
	switch cfg.Cache.Store {
	case config.StoreMemory:
		return NewState(cfg.AnyDoor.Port, store.NewMemoryCache()), nil
	case config.StoreSQLite, "":
		db, err := store.Open(paths.TemplatesDB(cfg), log)
		if err != nil {
			return nil, fmt.Errorf("opening template cache: %w", err)
		}
		ts := store.NewTemplateStore(db)
		return &State{
			port:      cfg.AnyDoor.Port,
			cache:     ts,
			templates: ts,
			close:     db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Cache.Store)
	}
}

// Port returns the any_door server port.
func (s *State) Port() int { return s.port }

// GetCache returns the template cached under key.
func (s *State) GetCache(key string) (string, bool) { return s.cache.Get(key) }

// PutCache stores value under key.
func (s *State) PutCache(key, value string) { s.cache.Put(key, value) }

// Templates exposes cache administration, or nil when the cache does not
// support it.
func (s *State) Templates() Templates { return s.templates }

// Close releases the cache backend.
func (s *State) Close() error { return s.close() }

// Templates administers the cached argument templates.
type Templates interface {
	Lookup(key string) (*store.Template, error)
	Save(key, value string) error
	List() ([]store.Template, error)
	Delete(key string) (bool, error)
	Reset() (int, error)
}

type memoryTemplates struct {
	c *store.MemoryCache
}

func (m memoryTemplates) Lookup(key string) (*store.Template, error) {
	for _, t := range m.c.List() {
		if t.Key == key {
			return &t, nil
		}
	}
	return nil, nil
}

func (m memoryTemplates) Save(key, value string) error {
	m.c.Put(key, value)
	return nil
}

func (m memoryTemplates) List() ([]store.Template, error) { return m.c.List(), nil }

func (m memoryTemplates) Delete(key string) (bool, error) { return m.c.Delete(key), nil }

func (m memoryTemplates) Reset() (int, error) { return m.c.Reset(), nil }
