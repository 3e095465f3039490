package progress

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type CSVStore struct {
	filePath string
}

func NewCSVStore(filePath string) *CSVStore {
	return &CSVStore{filePath: filePath}
}

func (s *CSVStore) Path() string { return s.filePath }

func (s *CSVStore) Load() (*Table, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading table: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing table: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}
	t, err := NewTable(records[0], records[1:])
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// Save rewrites the whole file: a temp file next to the target is written
// and renamed over it.
func (s *CSVStore) Save(t *Table) error {
	if dir := filepath.Dir(s.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating table directory: %w", err)
		}
	}
	tmpPath := s.filePath + "." + uuid.NewString() + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("error writing table: %w", err)
	}

	if err := writeTable(f, t); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("error writing table: %w", err)
	}
	return os.Rename(tmpPath, s.filePath)
}

func writeTable(dst io.Writer, t *Table) error {
	if _, err := dst.Write(utf8BOM); err != nil {
		return fmt.Errorf("error writing table: %w", err)
	}
	w := csv.NewWriter(dst)
	if err := w.Write(t.Columns()); err != nil {
		return fmt.Errorf("error writing table header: %w", err)
	}
	if err := w.WriteAll(t.Rows()); err != nil {
		return fmt.Errorf("error writing table rows: %w", err)
	}
	return nil
}
