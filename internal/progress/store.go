package progress

import (
	"errors"
	"fmt"
	"strings"
)

const (
	EngineCSV    = "csv"
	EngineSQLite = "sqlite"
)

// Store loads and fully rewrites the backing table.
type Store interface {
	Load() (*Table, error)
	Save(t *Table) error
}

func NewByEngine(engine string, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineCSV:
		return NewCSVStore(path), nil
	case EngineSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, errors.New("progress: unsupported store engine: " + engine)
	}
}

// LoadOrImport loads the table from store. When store holds no table yet
// and importPath is set, the CSV table at importPath is loaded instead and
// saved into store, so a new database starts from the existing word list.
func LoadOrImport(store Store, importPath string) (t *Table, imported bool, err error) {
	t, err = store.Load()
	if err == nil || !errors.Is(err, ErrEmptyTable) || importPath == "" {
		return t, false, err
	}
	t, err = NewCSVStore(importPath).Load()
	if err != nil {
		return nil, false, fmt.Errorf("progress: importing %s: %w", importPath, err)
	}
	if err := store.Save(t); err != nil {
		return nil, false, fmt.Errorf("progress: saving imported table: %w", err)
	}
	return t, true, nil
}
