package progress

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"wurdlurnur/internal/model"
)

const (
	ColWord         = "Word"
	ColPartOfSpeech = "Part of Speech"
	ColContext      = "Context"
	ColDefinition   = "Definition"
	ColDeclensions  = "Word Declensions"
	ColLearned      = "Lurnt"

	// LearnedSentinel marks a learned word in the Lurnt column.
	LearnedSentinel = "yes"

	// TimestampLayout is the minute-precision timestamp used in session column names.
	TimestampLayout = "02.01.2006 15:04"
)

var (
	ErrEmptyTable    = errors.New("progress: table has no words")
	ErrMissingColumn = errors.New("progress: missing required column")
	ErrUnknownWord   = errors.New("progress: word not in table")
	ErrUnknownColumn = errors.New("progress: column not in table")
)

var requiredColumns = []string{ColWord, ColPartOfSpeech, ColContext, ColDefinition, ColLearned}

var sessionColumnRe = regexp.MustCompile(`^Session #(\d+) - (\d{2}\.\d{2}\.\d{4} \d{2}:\d{2})$`)

// Table is the in-memory copy of the word database: a header row plus one
// row per word. Unknown columns are carried along untouched.
type Table struct {
	columns []string
	rows    [][]string
	index   map[string]int
}

// NewTable validates the header and pads short rows.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range t.columns {
		c = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
		t.columns[i] = c
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := t.index[c]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}
	t.rows = make([][]string, 0, len(rows))
	for _, r := range rows {
		row := make([]string, len(t.columns))
		copy(row, r)
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Rows returns a copy of every row, aligned with Columns.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Get returns the cell at row i in column col, or "" if the column is absent.
func (t *Table) Get(i int, col string) string {
	c, ok := t.index[col]
	if !ok || i < 0 || i >= len(t.rows) {
		return ""
	}
	return t.rows[i][c]
}

// Set writes value into column col of every row holding word.
func (t *Table) Set(word, col, value string) error {
	c, ok := t.index[col]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	w := t.index[ColWord]
	found := false
	for _, row := range t.rows {
		if row[w] == word {
			row[c] = value
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	return nil
}

// AddColumn appends an empty column. Adding an existing column is a no-op.
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], "")
	}
}

// SessionColumn is a parsed "Session #k - DD.MM.YYYY HH:MM" header.
type SessionColumn struct {
	Position  int
	Index     int
	Timestamp string
}

func ParseSessionColumn(name string) (SessionColumn, bool) {
	m := sessionColumnRe.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return SessionColumn{}, false
	}
	k, err := strconv.Atoi(m[1])
	if err != nil {
		return SessionColumn{}, false
	}
	return SessionColumn{Index: k, Timestamp: m[2]}, true
}

// SessionColumnName formats the header of session k created at ts.
func SessionColumnName(k int, ts time.Time) string {
	return fmt.Sprintf("Session #%d - %s", k, ts.Format(TimestampLayout))
}

// SessionColumns lists the session columns in header order.
func (t *Table) SessionColumns() []SessionColumn {
	var out []SessionColumn
	for i, c := range t.columns {
		if sc, ok := ParseSessionColumn(c); ok {
			sc.Position = i
			out = append(out, sc)
		}
	}
	return out
}

// NextSessionIndex is one more than the highest session index in the header.
func (t *Table) NextSessionIndex() int {
	highest := 0
	for _, sc := range t.SessionColumns() {
		if sc.Index > highest {
			highest = sc.Index
		}
	}
	return highest + 1
}

// Record decodes row i.
func (t *Table) Record(i int) model.WordRecord {
	rec := model.WordRecord{
		Row:          i,
		Word:         t.Get(i, ColWord),
		PartOfSpeech: t.Get(i, ColPartOfSpeech),
		Context:      t.Get(i, ColContext),
		Definition:   t.Get(i, ColDefinition),
		Learned:      strings.TrimSpace(t.Get(i, ColLearned)) == LearnedSentinel,
	}
	if decl := strings.TrimSpace(t.Get(i, ColDeclensions)); decl != "" {
		for _, d := range strings.Split(decl, ",") {
			if d = strings.TrimSpace(d); d != "" {
				rec.Declensions = append(rec.Declensions, d)
			}
		}
	}
	for _, sc := range t.SessionColumns() {
		r, _ := model.ParseCell(t.rows[i][sc.Position])
		if r == model.Pass || r == model.Fail {
			rec.History = append(rec.History, model.HistoryEntry{Result: r, Timestamp: sc.Timestamp})
		}
	}
	return rec
}

// Unlearned returns the row indices of words not yet learned, in table order.
func (t *Table) Unlearned() []int {
	var out []int
	for i := range t.rows {
		if strings.TrimSpace(t.Get(i, ColLearned)) != LearnedSentinel {
			out = append(out, i)
		}
	}
	return out
}
