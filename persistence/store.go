// Package persistence stores game snapshots under caller-chosen keys.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/Alex12062012/Call-of-War-2.0/game"
)

var (
	ErrNotFound   = errors.New("snapshot not found")
	ErrInvalidKey = errors.New("invalid snapshot key")
)

// Store persists snapshots. Implementations are safe for concurrent use.
type Store interface {
	Save(ctx context.Context, key string, s game.Snapshot) error
	// Load returns ErrNotFound when nothing is stored under key.
	Load(ctx context.Context, key string) (game.Snapshot, error)
	// Delete succeeds when nothing is stored under key.
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	FileBackend   = "file"
	SQLiteBackend = "sqlite"
	RedisBackend  = "redis"
)

// Open connects the named backend. target is a directory for files, a database
// path for SQLite and a connection URL for Redis.
func Open(backend, target string, ttl time.Duration) (Store, error) {
	switch backend {
	case FileBackend:
		return NewFileStore(target)
	case SQLiteBackend:
		return NewSQLiteStore(target)
	case RedisBackend:
		return NewRedisStore(target, ttl)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

func checkKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
