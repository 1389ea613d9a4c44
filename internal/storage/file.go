// Package storage provides the optional on-device persistence adapter.
// The in-memory stores stay the source of truth during a session; this
// adapter only gives durability across restarts.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abgdnv/storefront/internal/cart"
	"github.com/abgdnv/storefront/internal/order"
)

const (
	ordersFile = "orders.json"
	cartFile   = "cart.json"
)

// FileStore persists cart lines and orders as JSON files in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a FileStore.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// SaveOrders writes the full order history.
func (f *FileStore) SaveOrders(_ context.Context, orders []order.Order) error {
	return f.write(ordersFile, orders)
}

// LoadOrders reads the persisted order history.
// A missing file loads as an empty history.
func (f *FileStore) LoadOrders(_ context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := f.read(ordersFile, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SaveCart writes the current cart lines.
func (f *FileStore) SaveCart(_ context.Context, lines []cart.Line) error {
	return f.write(cartFile, lines)
}

// LoadCart reads the persisted cart lines.
// A missing file loads as an empty cart.
func (f *FileStore) LoadCart(_ context.Context) ([]cart.Line, error) {
	var lines []cart.Line
	if err := f.read(cartFile, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// write marshals v and replaces the target file atomically via a
// temporary file and rename, so a crash never leaves a half-written file.
func (f *FileStore) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(f.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(f.dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (f *FileStore) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}
