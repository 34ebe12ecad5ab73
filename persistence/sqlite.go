package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Alex12062012/Call-of-War-2.0/game"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps snapshots in a single SQLite table.
type SQLiteStore struct {
	conn *sqlx.DB
}

// NewSQLiteStore opens or creates the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	store := &SQLiteStore{conn: conn}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		turn INTEGER NOT NULL,
		players INTEGER NOT NULL,
		data BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	_, err := s.conn.Exec(schema)
	return err
}

// SnapshotInfo describes a stored snapshot without decoding it.
type SnapshotInfo struct {
	Key       string `db:"key"`
	Turn      int    `db:"turn"`
	Players   int    `db:"players"`
	UpdatedAt int64  `db:"updated_at"`
}

func (s *SQLiteStore) Save(ctx context.Context, key string, snap game.Snapshot) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	_, err = s.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (key, turn, players, data, updated_at) VALUES (?, ?, ?, ?, ?)`,
		key, snap.Turn, len(snap.Players), data, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) (game.Snapshot, error) {
	if err := checkKey(key); err != nil {
		return game.Snapshot{}, err
	}
	var data []byte
	err := s.conn.GetContext(ctx, &data, `SELECT data FROM snapshots WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return Decode(data)
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}

// List returns every stored snapshot, most recently saved first.
func (s *SQLiteStore) List(ctx context.Context) ([]SnapshotInfo, error) {
	var infos []SnapshotInfo
	err := s.conn.SelectContext(ctx, &infos,
		`SELECT key, turn, players, updated_at FROM snapshots ORDER BY updated_at DESC, key`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return infos, nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
