// Package session keeps the games in progress, one engine per session key.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Alex12062012/Call-of-War-2.0/engine"
	"github.com/Alex12062012/Call-of-War-2.0/game"
	"github.com/Alex12062012/Call-of-War-2.0/persistence"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownSession = errors.New("unknown session")
	ErrNoStore        = errors.New("registry has no snapshot store")
)

type entry struct {
	sync.Mutex
	engine *engine.Engine
}

// Registry maps session keys to games. Calls on one game are serialized by a
// per-game lock, so engines never see concurrent use.
type Registry struct {
	sync.RWMutex
	games  map[string]*entry
	store  persistence.Store
	logger zerolog.Logger
}

// NewRegistry creates an empty registry. store may be nil when snapshots are
// not needed.
func NewRegistry(store persistence.Store) *Registry {
	return &Registry{
		games:  make(map[string]*entry),
		store:  store,
		logger: log.Logger.With().Str("component", "session").Logger(),
	}
}

// Create starts a new game under a fresh random key.
func (r *Registry) Create(playerName string, playerCount, gridSide int, options ...engine.Option) (string, error) {
	e, err := engine.NewGame(playerName, playerCount, gridSide, options...)
	if err != nil {
		return "", err
	}
	key := uuid.New().String()
	r.Put(key, e)
	return key, nil
}

// Put registers e under key, replacing any game stored there.
func (r *Registry) Put(key string, e *engine.Engine) {
	r.Lock()
	defer r.Unlock()
	r.games[key] = &entry{engine: e}
	r.logger.Debug().Str("session", key).Msg("session registered")
}

// Do runs fn with exclusive access to the game under key.
func (r *Registry) Do(key string, fn func(e *engine.Engine) error) error {
	r.RLock()
	ent, ok := r.games[key]
	r.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, key)
	}

	ent.Lock()
	defer ent.Unlock()
	return fn(ent.engine)
}

// Remove forgets the game under key and reports whether there was one.
func (r *Registry) Remove(key string) bool {
	r.Lock()
	defer r.Unlock()
	_, ok := r.games[key]
	delete(r.games, key)
	return ok
}

// Keys lists the session keys in sorted order.
func (r *Registry) Keys() []string {
	r.RLock()
	defer r.RUnlock()
	keys := make([]string, 0, len(r.games))
	for key := range r.games {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Save snapshots the game under key into the store.
func (r *Registry) Save(ctx context.Context, key string) error {
	if r.store == nil {
		return ErrNoStore
	}
	var snap game.Snapshot
	err := r.Do(key, func(e *engine.Engine) error {
		snap = game.Serialize(e.World)
		return nil
	})
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, key, snap); err != nil {
		return fmt.Errorf("save session %s: %w", key, err)
	}
	r.logger.Info().Str("session", key).Int("turn", snap.Turn).Msg("session saved")
	return nil
}

// Restore loads the snapshot stored under key and registers it as a live game.
func (r *Registry) Restore(ctx context.Context, key string, options ...engine.Option) error {
	if r.store == nil {
		return ErrNoStore
	}
	snap, err := r.store.Load(ctx, key)
	if err != nil {
		return err
	}
	w, err := game.Deserialize(snap, nil)
	if err != nil {
		return fmt.Errorf("restore session %s: %w", key, err)
	}
	r.Put(key, engine.New(w, options...))
	r.logger.Info().Str("session", key).Int("turn", w.Turn).Msg("session restored")
	return nil
}
