package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Alex12062012/Call-of-War-2.0/game"
)

const fileExt = ".snap"

// FileStore keeps one compressed snapshot file per key in a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+fileExt)
}

// Save writes to a temporary file first so a crash never leaves a torn
// snapshot behind.
func (f *FileStore) Save(ctx context.Context, key string, s game.Snapshot) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("rename snapshot %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) Load(ctx context.Context, key string) (game.Snapshot, error) {
	if err := checkKey(key); err != nil {
		return game.Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return game.Snapshot{}, err
	}
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return game.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return Decode(data)
}

func (f *FileStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}
