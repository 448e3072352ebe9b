// Package prefs owns user preferences (theme) as an explicit, injectable
// object with a load-at-startup / persist-on-change lifecycle. Nothing reads
// preferences through global state.
package prefs

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/minhphat/retail-crm-go/internal/port"
)

// DefaultKey is the named KV entry holding the preferences blob.
const DefaultKey = "crm.prefs.v1"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences is the persisted preference set.
type Preferences struct {
	Theme string `json:"theme"`
}

// Store loads and persists preferences against its own KV entry. Persistence
// is best-effort, same policy as the customer store.
type Store struct {
	mu     sync.RWMutex
	kv     port.KV
	key    string
	logger *zap.Logger
	prefs  Preferences
}

// NewStore creates a preference store over the given KV handle.
func NewStore(kv port.KV, key string, logger *zap.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key, logger: logger, prefs: Preferences{Theme: ThemeLight}}
}

// Load reads the persisted preferences; missing or corrupt entries fall back
// to the defaults with a warning.
func (s *Store) Load(ctx context.Context) Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("load preferences failed", zap.Error(err))
		return s.prefs
	}
	if !ok {
		return s.prefs
	}
	var p Preferences
	if err := json.Unmarshal(raw, &p); err != nil {
		s.logger.Warn("load preferences: corrupt blob", zap.Error(err))
		return s.prefs
	}
	if p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}
	s.prefs = p
	return s.prefs
}

// Current returns the in-memory preferences.
func (s *Store) Current() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// SetTheme persists the given theme ("light" or "dark").
func (s *Store) SetTheme(ctx context.Context, theme string) Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	if theme != ThemeDark {
		theme = ThemeLight
	}
	s.prefs.Theme = theme
	s.persist(ctx)
	return s.prefs
}

// ToggleTheme flips light/dark and persists.
func (s *Store) ToggleTheme(ctx context.Context) Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prefs.Theme == ThemeDark {
		s.prefs.Theme = ThemeLight
	} else {
		s.prefs.Theme = ThemeDark
	}
	s.persist(ctx)
	return s.prefs
}

func (s *Store) persist(ctx context.Context) {
	raw, err := json.Marshal(s.prefs)
	if err != nil {
		s.logger.Warn("save preferences: marshal failed", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		s.logger.Warn("save preferences failed", zap.Error(err))
	}
}
