package typetable

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrSchemaMismatch reports a table file written by an incompatible version.
var ErrSchemaMismatch = errors.New("type table schema mismatch")

// Write stores the table at path. The file is replaced atomically so that a
// reader never observes a partially written table.
func Write(path string, tbl *Table) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".typetable-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(tbl); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: failed to encode type table: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Read loads a table written by Write.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tbl Table
	if err := msgpack.NewDecoder(f).Decode(&tbl); err != nil {
		return nil, fmt.Errorf("%s: failed to decode type table: %w", path, err)
	}
	if tbl.Schema != Schema {
		return nil, fmt.Errorf("%s: %w: file has %d, want %d", path, ErrSchemaMismatch, tbl.Schema, Schema)
	}
	return &tbl, nil
}
