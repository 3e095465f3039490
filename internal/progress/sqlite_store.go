package progress

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the same table in a single SQLite file: the header in
// table_columns and every cell in table_cells.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(filePath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", filePath)
	if err != nil {
		return nil, err
	}
	st := &SQLiteStore{db: db}
	if err := st.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load() (*Table, error) {
	rows, err := s.db.Query(`SELECT name FROM table_columns ORDER BY position`)
	if err != nil {
		return nil, err
	}
	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, err
		}
		columns = append(columns, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, ErrEmptyTable
	}

	cells, err := s.db.Query(`SELECT row, position, value FROM table_cells ORDER BY row, position`)
	if err != nil {
		return nil, err
	}
	defer cells.Close()

	var data [][]string
	for cells.Next() {
		var row, pos int
		var value string
		if err := cells.Scan(&row, &pos, &value); err != nil {
			return nil, err
		}
		if pos < 0 || pos >= len(columns) {
			return nil, fmt.Errorf("progress: cell (%d,%d) outside header", row, pos)
		}
		for len(data) <= row {
			data = append(data, make([]string, len(columns)))
		}
		data[row][pos] = value
	}
	if err := cells.Err(); err != nil {
		return nil, err
	}

	t, err := NewTable(columns, data)
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

// Save replaces the stored table inside one transaction.
func (s *SQLiteStore) Save(t *Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM table_cells; DELETE FROM table_columns;`); err != nil {
		return err
	}
	for pos, name := range t.Columns() {
		if _, err := tx.Exec(`INSERT INTO table_columns (position, name) VALUES (?, ?)`, pos, name); err != nil {
			return err
		}
	}
	stmt, err := tx.Prepare(`INSERT INTO table_cells (row, position, value) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, row := range t.Rows() {
		for pos, value := range row {
			if _, err := stmt.Exec(i, pos, value); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		PRAGMA journal_mode=WAL;
		CREATE TABLE IF NOT EXISTS table_columns (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS table_cells (
			row INTEGER NOT NULL,
			position INTEGER NOT NULL,
			value TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (row, position)
		);
	`)
	return err
}
